package transcribe

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/nguyentantai21042004/clipdigest/pkg/executor"
)

func (t *implTranscriber) Transcribe(ctx context.Context, repaired media.RepairedFile, info media.VideoInfo) (media.Transcript, error) {
	if !info.HasAudio {
		t.l.Info(ctx, "no audio stream in %s, skipping transcription", repaired.Path)
		return media.Transcript{}, nil
	}

	audioPath, err := t.extractAudio(ctx, repaired.Path)
	if err != nil {
		if ctx.Err() != nil {
			return media.Transcript{}, media.AsError(ctx.Err(), media.StageTranscribe)
		}
		return media.Transcript{}, media.NewError(media.KindTranscription, media.StageTranscribe,
			"audio could not be extracted", err).WithDiagnostics(executor.Diagnostics(err))
	}

	tr, err := t.engine.Transcribe(ctx, audioPath)
	if err != nil {
		if ctx.Err() != nil {
			return media.Transcript{}, media.AsError(ctx.Err(), media.StageTranscribe)
		}
		t.l.Error(ctx, "transcription failed: %v", err)
		return media.Transcript{}, media.NewError(media.KindTranscription, media.StageTranscribe,
			"speech transcription failed", err).WithDiagnostics(executor.Diagnostics(err))
	}

	tr.Text = normalize(tr.Text)
	t.l.Info(ctx, "transcribed %d characters (language %q)", len(tr.Text), tr.Language)
	return tr, nil
}

// normalize trims the text and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
