// Package media holds the data that flows between pipeline stages and the
// error taxonomy every stage reports with.
package media

import (
	"image"
	"io"
	"time"
)

// UploadedMedia is the raw upload as received by a front end. It is owned by
// a single request.
type UploadedMedia struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

// StagedFile is the upload persisted verbatim inside a request workspace.
type StagedFile struct {
	Path string
	Size int64
}

// RepairedFile is a remuxed, seekable copy of a StagedFile. The staged file
// is left untouched next to it.
type RepairedFile struct {
	Path   string
	Source StagedFile
}

// VideoInfo is what the probe learned about the repaired container.
type VideoInfo struct {
	TotalFrames int           `json:"total_frames"`
	FPS         float64       `json:"fps"`
	Duration    time.Duration `json:"-"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	HasAudio    bool          `json:"has_audio"`
	// FrameCountEstimated is set when the container did not declare a frame
	// count and it was derived from duration and frame rate.
	FrameCountEstimated bool `json:"frame_count_estimated,omitempty"`
}

// Frame is one decoded video frame in RGB.
type Frame struct {
	Index     int
	Timestamp time.Duration
	Image     image.Image
}

// FrameSample is an ordered set of frames with strictly increasing indices.
type FrameSample []Frame

// Indices returns the frame indices of the sample in order.
func (s FrameSample) Indices() []int {
	out := make([]int, len(s))
	for i, f := range s {
		out[i] = f.Index
	}
	return out
}

// CaptionSet holds one caption per frame, in frame order.
type CaptionSet []string

// Transcript is the recognized speech of a video. Text may be empty.
type Transcript struct {
	Text     string
	Language string
}

// SummaryResult is the summarizer's prose. Degraded marks a result whose text
// describes a summarization failure instead of the video.
type SummaryResult struct {
	Text string
	// Language is the language the summary was requested in.
	Language string
	Degraded bool
}
