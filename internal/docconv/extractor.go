package docconv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Extractor pulls the plain text out of one document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Runner runs an external command and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Output runs the command. A non-zero exit includes the command's stderr in the error.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// DefaultAntiword is the binary used for legacy .doc files.
const DefaultAntiword = "antiword"

// Antiword extracts text from legacy .doc files with the antiword tool.
type Antiword struct {
	Binary string
	Runner Runner
}

// Extract runs antiword with UTF-8 output and line wrapping disabled.
func (a *Antiword) Extract(ctx context.Context, path string) (string, error) {
	bin := a.Binary
	if bin == "" {
		bin = DefaultAntiword
	}
	runner := a.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	out, err := runner.Output(ctx, bin, "-m", "UTF-8.txt", "-w", "0", path)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	return string(out), nil
}
