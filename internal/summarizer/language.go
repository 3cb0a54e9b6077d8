package summarizer

import (
	"github.com/pemistahl/lingua-go"
)

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over every language lingua knows.
// Building it is expensive; create one per process.
func NewLinguaDetector() LanguageDetector {
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build(),
	}
}

func (d *linguaDetector) Detect(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return displayName(lang.String()), true
}
