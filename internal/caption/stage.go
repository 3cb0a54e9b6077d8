package caption

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"golang.org/x/sync/errgroup"
)

type implStage struct {
	l           logger.Logger
	model       Model
	maxParallel int
}

func (s *implStage) CaptionAll(ctx context.Context, sample media.FrameSample) (media.CaptionSet, error) {
	captions := make(media.CaptionSet, len(sample))
	if len(sample) == 0 {
		return captions, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallel)

	for i, frame := range sample {
		g.Go(func() error {
			text, err := s.model.Caption(gctx, frame.Image)
			if err != nil {
				return fmt.Errorf("caption frame %d: %w", frame.Index, err)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return fmt.Errorf("caption frame %d: model returned an empty caption", frame.Index)
			}
			captions[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, media.AsError(ctx.Err(), media.StageCaption)
		}
		s.l.Error(ctx, "captioning failed: %v", err)
		return nil, media.NewError(media.KindCaption, media.StageCaption, "frame captioning failed", err)
	}

	s.l.Debug(ctx, "captioned %d frames", len(captions))
	return captions, nil
}
