package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/sweepkit/internal/app"
)

// ParseSweep processes the sweepplot arguments. It returns the validated
// options, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func ParseSweep(args []string, output io.Writer) (*app.SweepConfig, bool, error) {
	slog.Debug("CLI parser started.", "command", "sweepplot")

	var (
		cfg     *app.SweepConfig
		logging loggingFlags
		opts    app.SweepConfig
	)

	cmd := &cobra.Command{
		Use:   "sweepplot [flags] CONFIG",
		Short: "Evaluate a registered function over a parameter grid and plot it",
		Long: `sweepplot evaluates a registered target function over the cartesian product
of the parameter values in one section of CONFIG (.hcl, .toml, .yaml), writes
one faceted PNG per combination of outer variables and a CSV of every row.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.List {
				slog.Debug("No config path provided, printing usage and exiting.")
				return cmd.Usage()
			}
			if len(args) == 1 {
				opts.ConfigPath = args[0]
			}
			opts.Logging = logging.logging()

			c, err := app.NewSweepConfig(opts)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.Section, "section", "s", "", "Config section to run. Defaults to the only or the 'default' section.")
	fs.StringVarP(&opts.OutputPrefix, "output", "o", "sweep", "Output path prefix for the PNG and CSV files.")
	fs.Float64Var(&opts.Width, "width", 12, "Figure width in inches.")
	fs.Float64Var(&opts.Height, "height", 8, "Figure height in inches.")
	fs.BoolVar(&opts.StrictExpr, "strict-expr", false, "Treat expressions referencing unknown names as errors instead of literal strings.")
	fs.BoolVar(&opts.List, "list", false, "List the registered target functions and exit.")
	logging.bind(fs)

	if err := execute(cmd, args, output); err != nil {
		return nil, false, err
	}
	slog.Debug("CLI parser finished.", "config", cfg)
	return cfg, cfg == nil, nil
}
