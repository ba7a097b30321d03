package liftover

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExternalTool is matched by every failure to start or complete the
// conversion tool.
var ErrExternalTool = errors.New("external conversion tool failed")

// ExternalToolError describes a failed tool invocation. ExitCode is -1 when
// the process never started.
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Err      error
}

func (e *ExternalToolError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s: exit status %d", cmd, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", cmd, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExternalToolError) Unwrap() error { return e.Err }

// Is reports ErrExternalTool as a match.
func (e *ExternalToolError) Is(target error) bool { return target == ErrExternalTool }
