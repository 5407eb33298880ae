package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/sweepkit/internal/app"
	"github.com/specialistvlad/sweepkit/internal/docconv"
)

// ParseConvert processes the doc2txt arguments.
func ParseConvert(args []string, output io.Writer) (*app.ConvertConfig, bool, error) {
	slog.Debug("CLI parser started.", "command", "doc2txt")

	var (
		cfg     *app.ConvertConfig
		logging loggingFlags
		opts    app.ConvertConfig
	)

	cmd := &cobra.Command{
		Use:   "doc2txt [flags] FILE...",
		Short: "Extract plain text from .doc and .docx files",
		Long: `doc2txt writes the text of every FILE to FILE.txt, or into --outdir.
Directories are searched recursively for .doc and .docx files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			opts.Inputs = args
			opts.Logging = logging.logging()

			c, err := app.NewConvertConfig(opts)
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVarP(&opts.ASCII, "ascii", "a", false, "Transliterate the text to ASCII.")
	fs.StringVarP(&opts.OutDir, "outdir", "d", "", "Write all .txt files into this directory.")
	fs.StringVar(&opts.Antiword, "antiword", docconv.DefaultAntiword, "antiword binary used for legacy .doc files.")
	logging.bind(fs)

	if err := execute(cmd, args, output); err != nil {
		return nil, false, err
	}
	return cfg, cfg == nil, nil
}
