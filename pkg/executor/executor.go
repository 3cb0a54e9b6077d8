package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// A killed process reports "signal: killed"; surface the cancellation instead.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		return nil, &CommandError{
			Name:     name,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   trimStderr(stderr.String()),
			Err:      err,
		}
	}

	return stdout.Bytes(), nil
}
