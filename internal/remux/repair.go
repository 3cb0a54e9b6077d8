package remux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

const (
	fixedName   = "fixed.mp4"
	refixedName = "fixed-remux.mp4"
)

type implRepairer struct {
	l      logger.Logger
	exec   executor.Executor
	ffmpeg string
}

func (r *implRepairer) Repair(ctx context.Context, staged media.StagedFile) (media.RepairedFile, error) {
	output := outputPath(staged.Path)

	r.l.Debug(ctx, "remuxing %s -> %s", staged.Path, output)
	if _, err := r.exec.Execute(ctx, r.ffmpeg, Args(staged.Path, output)...); err != nil {
		if ctx.Err() != nil {
			return media.RepairedFile{}, media.AsError(ctx.Err(), media.StageRepair)
		}
		r.l.Warn(ctx, "remux failed for %s: %v", staged.Path, err)
		return media.RepairedFile{}, media.NewError(media.KindRepair, media.StageRepair,
			"could not repair the video container", err).WithDiagnostics(executor.Diagnostics(err))
	}

	info, err := os.Stat(output)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return media.RepairedFile{}, media.NewError(media.KindRepair, media.StageRepair,
				"repair produced no output", err)
		}
		return media.RepairedFile{}, fmt.Errorf("stat repaired file: %w", err)
	}
	if info.Size() == 0 {
		return media.RepairedFile{}, media.NewError(media.KindRepair, media.StageRepair,
			"repair produced an empty file", nil)
	}

	r.l.Debug(ctx, "remux complete: %s (%d bytes)", output, info.Size())
	return media.RepairedFile{Path: output, Source: staged}, nil
}

// Args builds the stream-copy remux command line. Streams are copied as-is
// and the index is moved to the front of the file.
func Args(input, output string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", input,
		"-map", "0",
		"-c", "copy",
		"-movflags", "+faststart",
		output,
	}
}

// outputPath places the repaired file next to its input, never on top of it.
func outputPath(input string) string {
	dir := filepath.Dir(input)
	if filepath.Base(input) == fixedName {
		return filepath.Join(dir, refixedName)
	}
	return filepath.Join(dir, fixedName)
}
