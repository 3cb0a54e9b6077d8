package frames

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

type implSampler struct {
	l    logger.Logger
	exec executor.Executor
	opts Options
}

func (s *implSampler) Sample(ctx context.Context, repaired media.RepairedFile, info media.VideoInfo, count int) (media.FrameSample, error) {
	if count < 1 {
		return nil, media.NewError(media.KindInvalidArgument, media.StageSampling,
			fmt.Sprintf("frame count must be positive, got %d", count), nil)
	}
	if info.TotalFrames <= 0 {
		return nil, media.NewError(media.KindNoFrames, media.StageSampling, "video reports no frames", nil)
	}

	indices := Linspace(info.TotalFrames, count)
	sample := make(media.FrameSample, 0, len(indices))

	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return nil, media.AsError(err, media.StageSampling)
		}

		img, err := s.grabFrame(ctx, repaired.Path, idx, info.FPS)
		if err != nil {
			if ctx.Err() != nil {
				return nil, media.AsError(ctx.Err(), media.StageSampling)
			}
			s.l.Warn(ctx, "skipping frame %d of %s: %v %s", idx, repaired.Path, err, executor.Diagnostics(err))
			continue
		}

		sample = append(sample, media.Frame{
			Index:     idx,
			Timestamp: timestampOf(idx, info.FPS),
			Image:     img,
		})
	}

	if len(sample) == 0 {
		return nil, media.NewError(media.KindNoFrames, media.StageSampling, "no frame could be decoded", nil)
	}
	if len(sample) < count {
		if s.opts.StrictCount {
			return nil, media.NewError(media.KindIncompleteSample, media.StageSampling,
				fmt.Sprintf("decoded %d of %d requested frames", len(sample), count), nil)
		}
		s.l.Info(ctx, "sampled %d of %d requested frames from %s", len(sample), count, repaired.Path)
	}

	return sample, nil
}
