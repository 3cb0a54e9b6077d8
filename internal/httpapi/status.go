package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// StatusClientClosedRequest is the de facto status for requests the client
// abandoned.
const StatusClientClosedRequest = 499

// StatusFor maps a pipeline error to an HTTP status code.
func StatusFor(err error) int {
	switch media.KindOf(err) {
	case media.KindInvalidArgument, media.KindEmptyUpload:
		return http.StatusBadRequest
	case media.KindUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	case media.KindUnopenableMedia, media.KindNoFrames, media.KindIncompleteSample:
		return http.StatusUnprocessableEntity
	case media.KindCaption, media.KindTranscription, media.KindSummary:
		return http.StatusBadGateway
	case media.KindCancelled:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}
