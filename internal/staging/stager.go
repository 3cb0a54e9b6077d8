package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

const (
	rawName    = "raw"
	defaultExt = ".mp4"
)

type implStager struct {
	l        logger.Logger
	maxBytes int64
}

func (s *implStager) Stage(ctx context.Context, ws *Workspace, upload media.UploadedMedia) (media.StagedFile, error) {
	if upload.Body == nil {
		return media.StagedFile{}, media.NewError(media.KindEmptyUpload, media.StageStaging, "no file was uploaded", nil)
	}
	if err := ctx.Err(); err != nil {
		return media.StagedFile{}, media.AsError(err, media.StageStaging)
	}

	path := ws.Path(rawName + extensionOf(upload.Filename))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return media.StagedFile{}, fmt.Errorf("create staged file: %w", err)
	}

	var src io.Reader = &ctxReader{ctx: ctx, r: upload.Body}
	if s.maxBytes > 0 {
		// one extra byte tells an exact-size upload from an oversized one
		src = io.LimitReader(src, s.maxBytes+1)
	}

	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	if copyErr != nil {
		if errors.Is(copyErr, context.Canceled) || errors.Is(copyErr, context.DeadlineExceeded) {
			return media.StagedFile{}, media.AsError(copyErr, media.StageStaging)
		}
		return media.StagedFile{}, media.NewError(media.KindInternal, media.StageStaging, "failed to store upload", copyErr)
	}
	if closeErr != nil {
		return media.StagedFile{}, fmt.Errorf("close staged file: %w", closeErr)
	}

	if s.maxBytes > 0 && n > s.maxBytes {
		return media.StagedFile{}, media.NewError(media.KindUploadTooLarge, media.StageStaging,
			fmt.Sprintf("upload exceeds %d bytes", s.maxBytes), nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return media.StagedFile{}, fmt.Errorf("stat staged file: %w", err)
	}
	if info.Size() == 0 {
		return media.StagedFile{}, media.NewError(media.KindEmptyUpload, media.StageStaging, "uploaded file is empty", nil)
	}

	s.l.Debug(ctx, "staged upload %q (%d bytes) at %s", upload.Filename, info.Size(), path)
	return media.StagedFile{Path: path, Size: info.Size()}, nil
}

func extensionOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || ext == "." || len(ext) > 8 {
		return defaultExt
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return defaultExt
		}
	}
	return ext
}

// ctxReader stops a copy once the request is cancelled.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
