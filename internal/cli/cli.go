package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/specialistvlad/sweepkit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const (
	// ExitRuntime is the exit code of a failed run.
	ExitRuntime = 1
	// ExitUsage is the exit code of invalid arguments.
	ExitUsage = 2
)

// loggingFlags binds the flags shared by every tool.
type loggingFlags struct {
	format  string
	level   string
	verbose bool
}

func (l *loggingFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&l.format, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&l.level, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.BoolVarP(&l.verbose, "verbose", "v", false, "Verbose output, same as --log-level=debug.")
}

func (l *loggingFlags) logging() app.Logging {
	level := strings.ToLower(l.level)
	if l.verbose {
		level = "debug"
	}
	return app.Logging{LogFormat: strings.ToLower(l.format), LogLevel: level}
}

// execute runs a single-command parser. Any parse or validation failure is
// returned as a usage ExitError.
func execute(cmd *cobra.Command, args []string, output io.Writer) error {
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		slog.Debug("CLI parsing failed.", "command", cmd.Name(), "error", err)
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	return nil
}
