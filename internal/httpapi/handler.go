package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/internal/pipeline"
)

const (
	headerRequestID = "X-Request-ID"
	fieldVideo      = "video"
	fieldNumFrames  = "num_frames"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("POST /summarize/{$}", s.handleSummarize)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.withRequestID(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSummarize streams the "video" part straight into the pipeline. A
// num_frames form field is honoured only when it precedes the file part; the
// query parameter always is.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := logger.RequestID(ctx)

	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	numFrames, err := s.parseNumFrames(r.URL.Query().Get(fieldNumFrames))
	if err != nil {
		s.writeError(ctx, w, err, id)
		return
	}

	mr, err := r.MultipartReader()
	if err != nil {
		s.writeError(ctx, w, media.NewError(media.KindInvalidArgument, media.StageUpload,
			"request must be multipart/form-data", err), id)
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.writeError(ctx, w, media.NewError(media.KindInvalidArgument, media.StageUpload,
				"malformed multipart body", err), id)
			return
		}

		switch part.FormName() {
		case fieldNumFrames:
			if r.URL.Query().Has(fieldNumFrames) {
				continue
			}
			value, err := io.ReadAll(io.LimitReader(part, 32))
			if err != nil {
				s.writeError(ctx, w, media.NewError(media.KindInvalidArgument, media.StageUpload, "unreadable num_frames", err), id)
				return
			}
			if numFrames, err = s.parseNumFrames(string(value)); err != nil {
				s.writeError(ctx, w, err, id)
				return
			}
		case fieldVideo:
			s.runPipeline(ctx, w, id, part, numFrames)
			return
		}
	}

	s.writeError(ctx, w, media.NewError(media.KindEmptyUpload, media.StageUpload,
		"no file was uploaded in field \"video\"", nil), id)
}

func (s *Server) runPipeline(ctx context.Context, w http.ResponseWriter, id string, part *multipart.Part, numFrames int) {
	res, err := s.pipeline.Run(ctx, pipeline.Request{
		ID: id,
		Upload: media.UploadedMedia{
			Body:        part,
			Filename:    part.FileName(),
			ContentType: part.Header.Get("Content-Type"),
		},
		NumFrames: numFrames,
	})
	if err != nil {
		s.writeError(ctx, w, err, id)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// parseNumFrames returns 0 for an empty value so the pipeline default applies.
func (s *Server) parseNumFrames(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	_, lo, hi := s.pipeline.FrameBounds()
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, media.NewError(media.KindInvalidArgument, media.StageUpload,
			fmt.Sprintf("num_frames must be an integer between %d and %d", lo, hi), err)
	}
	return n, nil
}

func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error, id string) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.l.Error(ctx, "request failed with %d: %v", status, err)
	} else {
		s.l.Warn(ctx, "request rejected with %d: %v", status, err)
	}
	writeJSON(w, status, pipeline.NewErrorBody(err, id))
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID assigns every request a uuid, echoes it in X-Request-ID and
// logs the outcome.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		ctx := logger.WithRequestID(r.Context(), id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(ctx))

		s.l.Info(ctx, "%s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
