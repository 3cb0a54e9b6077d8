// Package staging persists an upload verbatim into a request workspace.
package staging

import (
	"context"

	"github.com/nguyentantai21042004/clipdigest/internal/media"
)

// Stager writes uploaded bytes to disk.
type Stager interface {
	// Stage streams upload into ws. It never starts a subprocess.
	Stage(ctx context.Context, ws *Workspace, upload media.UploadedMedia) (media.StagedFile, error)
}
