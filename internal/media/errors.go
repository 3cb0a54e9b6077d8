package media

import (
	"context"
	"errors"
	"fmt"
)

// Kind is the stable tag attached to every hard-stop failure.
type Kind string

const (
	KindInvalidArgument  Kind = "invalid_argument"
	KindEmptyUpload      Kind = "empty_upload"
	KindUploadTooLarge   Kind = "upload_too_large"
	KindRepair           Kind = "repair_failed"
	KindUnopenableMedia  Kind = "unopenable_media"
	KindNoFrames         Kind = "no_frames"
	KindIncompleteSample Kind = "incomplete_sample"
	KindCaption          Kind = "caption_failed"
	KindTranscription    Kind = "transcription_failed"
	KindSummary          Kind = "summary_failed"
	KindCancelled        Kind = "cancelled"
	KindInternal         Kind = "internal"
)

// Stage names used in errors and logs.
const (
	StageAdmission  = "admission"
	StageUpload     = "upload"
	StageStaging    = "staging"
	StageRepair     = "repair"
	StageSampling   = "sampling"
	StageCaption    = "caption"
	StageTranscribe = "transcribe"
	StageSummary    = "summary"
)

// Error is a classified pipeline failure.
type Error struct {
	Kind    Kind
	Stage   string
	Message string
	// Diagnostics holds tool output such as ffmpeg's stderr. It is logged,
	// never returned to clients.
	Diagnostics string
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Stage, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%s): %s", e.Stage, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified error.
func NewError(kind Kind, stage, message string, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message, Err: err}
}

// WithDiagnostics attaches tool output to the error.
func (e *Error) WithDiagnostics(d string) *Error {
	e.Diagnostics = d
	return e
}

// KindOf returns the kind of err. Context cancellation maps to
// KindCancelled and anything unclassified to KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}
	return KindInternal
}

// AsError returns err as *Error, classifying it when needed.
func AsError(err error, stage string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	kind := KindOf(err)
	msg := "unexpected failure"
	if kind == KindCancelled {
		msg = "request cancelled"
	}
	return NewError(kind, stage, msg, err)
}
