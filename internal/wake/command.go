package wake

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Commander runs an external command to completion.
type Commander interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecCommander runs commands with os/exec, forwarding their output.
type ExecCommander struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run runs the command and waits for it.
func (c ExecCommander) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// exitCode returns the exit status carried by err, if any.
func exitCode(err error) (int, bool) {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode(), true
	}
	return 0, false
}
