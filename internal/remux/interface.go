// Package remux rewrites an uploaded container into a seekable file without
// re-encoding.
package remux

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Repairer fixes container-level damage such as a missing or trailing moov atom.
type Repairer interface {
	Repair(ctx context.Context, staged media.StagedFile) (media.RepairedFile, error)
}
