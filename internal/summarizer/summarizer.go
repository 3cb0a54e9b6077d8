// Package summarizer builds the summary prompt and calls the configured LLM.
package summarizer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (s *implSummarizer) Summarize(ctx context.Context, transcript media.Transcript, captions media.CaptionSet) (media.SummaryResult, error) {
	lang := s.language(transcript)
	system := SystemPrompt(lang)
	prompt := BuildPrompt(transcript.Text, captions, lang)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug(ctx, "requesting summary (language %q, %d captions, %d transcript chars)", lang, len(captions), len(transcript.Text))

	text, err := s.backend.Complete(callCtx, system, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return media.SummaryResult{}, media.AsError(ctx.Err(), media.StageSummary)
		}
		return media.SummaryResult{}, media.NewError(media.KindSummary, media.StageSummary, "summary service failed", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return media.SummaryResult{}, media.NewError(media.KindSummary, media.StageSummary,
			"summary service returned no text", nil)
	}

	return media.SummaryResult{Text: text, Language: lang}, nil
}

// language prefers detection on the transcript and falls back to the
// engine's own tag.
func (s *implSummarizer) language(t media.Transcript) string {
	if s.detector != nil && strings.TrimSpace(t.Text) != "" {
		if name, ok := s.detector.Detect(t.Text); ok {
			return name
		}
	}
	return displayName(t.Language)
}

var titleCaser = cases.Title(language.Und)

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return titleCaser.String(strings.ToLower(name))
}
