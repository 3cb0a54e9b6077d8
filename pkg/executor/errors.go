package executor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// maxStderr bounds how much diagnostic output is kept on an error.
const maxStderr = 4096

// CommandError describes a failed external command.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command '%s' failed: %v\nstderr: %s", filepath.Base(e.Name), e.Err, e.Stderr)
	}
	return fmt.Sprintf("command '%s' failed: %v", filepath.Base(e.Name), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Diagnostics returns the captured stderr of a failed command, if err wraps one.
func Diagnostics(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Stderr
	}
	return ""
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		return s[len(s)-maxStderr:]
	}
	return s
}
