// Package httpapi exposes the pipeline over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
)

// Options configures the HTTP front end.
type Options struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the summarize endpoint.
type Server struct {
	l        logger.Logger
	pipeline pipeline.Pipeline
	opts     Options
	handler  http.Handler
}

// New creates a Server.
func New(l logger.Logger, p pipeline.Pipeline, opts Options) *Server {
	s := &Server{
		l:        l,
		pipeline: p,
		opts:     opts,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler, with request ids and access logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}
