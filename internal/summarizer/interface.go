package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Summarizer condenses a transcript and frame captions into prose.
type Summarizer interface {
	// Summarize makes exactly one call to the summary service.
	Summarize(ctx context.Context, transcript media.Transcript, captions media.CaptionSet) (media.SummaryResult, error)
}

// Backend is a chat-style text generation service.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LanguageDetector names the language a text is written in.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}
