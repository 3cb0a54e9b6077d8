package staging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/clipdigest/internal/logger"
	"github.com/nguyentantai21042004/clipdigest/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(t.TempDir(), "test-req")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestStage(t *testing.T) {
	payload := bytes.Repeat([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, 1024)

	tests := []struct {
		name     string
		upload   media.UploadedMedia
		maxBytes int64
		wantKind media.Kind
		wantExt  string
		wantSize int64
	}{
		{
			name:     "round trip preserves size",
			upload:   media.UploadedMedia{Body: bytes.NewReader(payload), Filename: "clip.MOV"},
			wantExt:  ".mov",
			wantSize: int64(len(payload)),
		},
		{
			name:     "missing extension defaults to mp4",
			upload:   media.UploadedMedia{Body: bytes.NewReader(payload), Filename: "clip"},
			wantExt:  ".mp4",
			wantSize: int64(len(payload)),
		},
		{
			name:     "exactly at the cap",
			upload:   media.UploadedMedia{Body: bytes.NewReader(payload), Filename: "a.mp4"},
			maxBytes: int64(len(payload)),
			wantExt:  ".mp4",
			wantSize: int64(len(payload)),
		},
		{
			name:     "empty body",
			upload:   media.UploadedMedia{Body: strings.NewReader(""), Filename: "a.mp4"},
			wantKind: media.KindEmptyUpload,
		},
		{
			name:     "missing body",
			upload:   media.UploadedMedia{Filename: "a.mp4"},
			wantKind: media.KindEmptyUpload,
		},
		{
			name:     "over the cap",
			upload:   media.UploadedMedia{Body: bytes.NewReader(payload), Filename: "a.mp4"},
			maxBytes: int64(len(payload)) - 1,
			wantKind: media.KindUploadTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newWorkspace(t)
			s := New(logger.Nop(), tt.maxBytes)

			staged, err := s.Stage(context.Background(), ws, tt.upload)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, media.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, staged.Size)
			assert.Equal(t, ws.Path("raw"+tt.wantExt), staged.Path)

			got, err := os.ReadFile(staged.Path)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestStageCancelled(t *testing.T) {
	ws := newWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(logger.Nop(), 0).Stage(ctx, ws, media.UploadedMedia{Body: strings.NewReader("data"), Filename: "a.mp4"})
	require.Error(t, err)
	assert.Equal(t, media.KindCancelled, media.KindOf(err))
}

func TestWorkspaceClose(t *testing.T) {
	root := t.TempDir()
	ws, err := NewWorkspace(root, "abc/../123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(ws.Dir()), "req-abc123-"))
	require.NoError(t, os.WriteFile(ws.Path("fixed.mp4"), []byte("x"), 0644))

	require.NoError(t, ws.Close())
	_, err = os.Stat(ws.Dir())
	assert.True(t, os.IsNotExist(err))

	// second close is a no-op
	assert.NoError(t, ws.Close())
}

func TestExtensionOf(t *testing.T) {
	tests := map[string]string{
		"video.mp4":       ".mp4",
		"VIDEO.WEBM":      ".webm",
		"noext":           ".mp4",
		"weird.m p4":      ".mp4",
		"../../etc/x.mkv": ".mkv",
		"":                ".mp4",
	}
	for in, want := range tests {
		assert.Equal(t, want, extensionOf(in), in)
	}
}
