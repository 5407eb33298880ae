package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/sweepkit/internal/docconv"
)

// Convert extracts the text of every input document. Missing inputs and
// extraction failures do not stop the batch, but make the result an error.
func (a *App) Convert(ctx context.Context, cfg *ConvertConfig, runner docconv.Runner) (*docconv.Report, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Convert method started.", "inputs", len(cfg.Inputs))

	converter := docconv.NewConverter(docconv.Options{
		ASCII:    cfg.ASCII,
		OutDir:   cfg.OutDir,
		Antiword: cfg.Antiword,
		Runner:   runner,
	})
	report := converter.Convert(ctx, cfg.Inputs)

	a.logger.Info("Conversion finished.",
		"converted", len(report.Converted), "skipped", len(report.Skipped), "failed", len(report.Failed))
	if !report.OK() {
		return report, fmt.Errorf("%d of the inputs could not be converted", len(report.Failed))
	}
	return report, nil
}
