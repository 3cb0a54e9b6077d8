package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name with args and returns its stdout. A non-zero exit is
	// reported as *CommandError carrying the command's stderr.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)
}
