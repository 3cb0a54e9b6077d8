package staging

import "github.com/nguyentantai21042004/clipdigest/internal/logger"

// New creates a Stager. maxBytes caps the upload size; 0 disables the cap.
func New(l logger.Logger, maxBytes int64) Stager {
	return &implStager{
		l:        l,
		maxBytes: maxBytes,
	}
}
