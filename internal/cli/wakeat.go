package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/sweepkit/internal/app"
	"github.com/specialistvlad/sweepkit/internal/wake"
)

// ParseWake processes the wakeat arguments.
func ParseWake(args []string, output io.Writer) (*app.WakeConfig, bool, error) {
	slog.Debug("CLI parser started.", "command", "wakeat")

	var (
		cfg     *app.WakeConfig
		logging loggingFlags
		opts    app.WakeConfig
	)

	cmd := &cobra.Command{
		Use:   "wakeat [flags] TIME...",
		Short: "Suspend the machine and wake it at a given time",
		Long: `wakeat suspends the machine with rtcwake until TIME, given either as
"YYYY-MM-DD HH:MM[:SS]" or as "HH:MM[:SS]" (the next occurrence of that time).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			opts.Tokens = args
			opts.Logging = logging.logging()

			c, err := app.NewWakeConfig(opts)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.Mode, "mode", "m", wake.DefaultMode, fmt.Sprintf("Suspend mode. Options: %s.", strings.Join(wake.Modes, ", ")))
	fs.IntVarP(&opts.Timeout, "timeout", "t", 0, "Ask for confirmation with a dialog that times out after this many seconds. 0 disables it.")
	fs.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print the rtcwake command instead of running it.")
	fs.StringVar(&opts.RTCWake, "rtcwake", "rtcwake", "rtcwake binary.")
	fs.StringVar(&opts.Zenity, "zenity", "zenity", "zenity binary used for the confirmation dialog.")
	logging.bind(fs)

	if err := execute(cmd, args, output); err != nil {
		return nil, false, err
	}
	return cfg, cfg == nil, nil
}
