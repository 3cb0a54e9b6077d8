package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is a per-request scratch directory. Everything a request writes
// to disk lives inside it and is removed by Close.
type Workspace struct {
	dir string
}

// NewWorkspace allocates a fresh directory under root. An empty root uses the
// system temp directory.
func NewWorkspace(root, requestID string) (*Workspace, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("create workspace root: %w", err)
		}
	}

	dir, err := os.MkdirTemp(root, "req-"+sanitizeID(requestID)+"-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Close removes the workspace and everything in it. It is safe to call more
// than once.
func (w *Workspace) Close() error {
	if w == nil || w.dir == "" {
		return nil
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}

func sanitizeID(id string) string {
	id = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return -1
	}, id)
	if len(id) > 36 {
		id = id[:36]
	}
	if id == "" {
		id = "anon"
	}
	return id
}
