package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/expr"
	"github.com/specialistvlad/sweepkit/internal/fsutil"
	"github.com/specialistvlad/sweepkit/internal/plot"
	"github.com/specialistvlad/sweepkit/internal/sweep"
)

// Sweep loads the configured section, evaluates the sweep, then writes one
// PNG per figure and the CSV of every evaluated row. It returns the written
// paths, figures first.
func (a *App) Sweep(ctx context.Context, cfg *SweepConfig) ([]string, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Sweep method started.")

	if cfg.List {
		a.listTargets()
		return nil, nil
	}

	loader, err := loaderFor(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	file, err := loader.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	section, err := file.Select(cfg.Section)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Configuration section selected.", "section", section.Name, "target", section.Module+"."+section.Func)
	ctx = ctxlog.With(ctx, "section", section.Name)

	resolver := expr.NewResolver(expr.WithStrict(cfg.StrictExpr))
	plan, err := sweep.NewPlan(ctx, section, a.registry, resolver)
	if err != nil {
		return nil, err
	}

	res, err := sweep.Run(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("sweep failed: %w", err)
	}

	paths, err := figurePaths(plan, cfg.OutputPrefix, res.Figures)
	if err != nil {
		return nil, err
	}

	var written []string
	opts := plot.Options{Width: cfg.Width, Height: cfg.Height}
	for i, fig := range res.Figures {
		path := paths[i]
		if err := plot.SaveFile(path, fig, opts); err != nil {
			return written, err
		}
		a.logger.Info("Wrote figure.", "path", path)
		written = append(written, path)
	}

	csvPath := plan.CSVFile(cfg.OutputPrefix)
	if err := writeCSV(csvPath, res); err != nil {
		return written, err
	}
	a.logger.Info("Wrote data.", "path", csvPath, "rows", len(res.Rows))
	written = append(written, csvPath)

	a.logger.Debug("App.Sweep method finished.")
	return written, nil
}

// figurePaths returns one image path per figure and fails if two figures
// would be written to the same file.
func figurePaths(plan *sweep.Plan, prefix string, figures []*sweep.Figure) ([]string, error) {
	paths := make([]string, len(figures))
	owner := make(map[string]string, len(figures))
	for i, fig := range figures {
		path := plan.ImageFile(prefix, fig.Outer)
		if prev, dup := owner[path]; dup {
			return nil, fmt.Errorf("%w: figures %q and %q would both be written to %s", sweep.ErrValidation, prev, fig.Title, path)
		}
		owner[path] = fig.Title
		paths[i] = path
	}
	return paths, nil
}

func (a *App) listTargets() {
	for _, t := range a.registry.Targets() {
		params := make([]string, 0, len(t.Params))
		for _, p := range t.Params {
			if p.Required() {
				params = append(params, p.Name)
			} else {
				params = append(params, p.Name+"="+sweep.FormatValue(*p.Default))
			}
		}
		fmt.Fprintf(a.outW, "%s.%s(%s)\n", t.Module, t.Name, strings.Join(params, ", "))
		if t.Description != "" {
			fmt.Fprintf(a.outW, "    %s\n", t.Description)
		}
	}
}

func writeCSV(path string, res *sweep.Result) error {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := sweep.WriteCSV(f, res); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
