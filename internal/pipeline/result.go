package pipeline

import (
	"math"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Result is the success envelope.
type Result struct {
	RequestID  string     `json:"request_id"`
	Transcript string     `json:"transcript"`
	Language   string     `json:"language,omitempty"`
	Captions   []string   `json:"captions"`
	Summary    string     `json:"summary"`
	Video      VideoMeta  `json:"video"`
	Frames     []FrameRef `json:"frames"`
	Warnings   []string   `json:"warnings"`
	// SummaryDegraded is set when Summary describes a summarizer failure.
	SummaryDegraded bool `json:"summary_degraded,omitempty"`
}

// VideoMeta describes the repaired input.
type VideoMeta struct {
	DurationSeconds     float64 `json:"duration_seconds"`
	Width               int     `json:"width"`
	Height              int     `json:"height"`
	FPS                 float64 `json:"fps"`
	TotalFrames         int     `json:"total_frames"`
	FrameCountEstimated bool    `json:"frame_count_estimated,omitempty"`
	HasAudio            bool    `json:"has_audio"`
}

// FrameRef locates a captioned frame. Captions[i] belongs to Frames[i].
type FrameRef struct {
	Index            int     `json:"index"`
	TimestampSeconds float64 `json:"timestamp_seconds"`
}

// ErrorBody is the failure envelope. It never carries partial results.
type ErrorBody struct {
	ErrorKind media.Kind `json:"error_kind"`
	Message   string     `json:"message"`
	RequestID string     `json:"request_id,omitempty"`
}

// NewErrorBody renders err for clients. Diagnostics are left out.
func NewErrorBody(err error, requestID string) ErrorBody {
	e := media.AsError(err, "")
	return ErrorBody{
		ErrorKind: e.Kind,
		Message:   e.Message,
		RequestID: requestID,
	}
}

func videoMeta(info media.VideoInfo) VideoMeta {
	return VideoMeta{
		DurationSeconds:     round3(info.Duration.Seconds()),
		Width:               info.Width,
		Height:              info.Height,
		FPS:                 round3(info.FPS),
		TotalFrames:         info.TotalFrames,
		FrameCountEstimated: info.FrameCountEstimated,
		HasAudio:            info.HasAudio,
	}
}

func frameRefs(sample media.FrameSample) []FrameRef {
	refs := make([]FrameRef, len(sample))
	for i, f := range sample {
		refs[i] = FrameRef{Index: f.Index, TimestampSeconds: round3(f.Timestamp.Seconds())}
	}
	return refs
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
