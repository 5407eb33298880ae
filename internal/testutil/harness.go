package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sweepkit/internal/app"
	"github.com/specialistvlad/sweepkit/internal/registry"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	// Written lists the produced files, figures first and the CSV last.
	Written []string
	// Dir is the temporary root the files were written to.
	Dir string
}

// CSVPath returns the CSV written by the run, or "".
func (r *HarnessResult) CSVPath() string {
	if len(r.Written) == 0 {
		return ""
	}
	return r.Written[len(r.Written)-1]
}

// Options tweaks the sweep options of a harness run.
type Options func(cfg *app.SweepConfig)

// WithSection selects a configuration section.
func WithSection(name string) Options {
	return func(cfg *app.SweepConfig) { cfg.Section = name }
}

// WithStrictExpr turns on strict expression resolution.
func WithStrictExpr() Options {
	return func(cfg *app.SweepConfig) { cfg.StrictExpr = true }
}

// RunSweepTest writes files (relative path -> content) into a temporary
// directory and runs a sweep of the file named configName. Without modules
// the core target modules are used.
func RunSweepTest(t *testing.T, files map[string]string, configName string, modules []registry.Module, opts ...Options) *HarnessResult {
	t.Helper()
	return RunSweepTestWithContext(context.Background(), t, files, configName, modules, opts...)
}

// RunSweepTestWithContext is RunSweepTest with a caller-provided context.
func RunSweepTestWithContext(ctx context.Context, t *testing.T, files map[string]string, configName string, modules []registry.Module, opts ...Options) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg := &app.SweepConfig{
		ConfigPath:   filepath.Join(tmpDir, configName),
		OutputPrefix: filepath.Join(tmpDir, "out", "sweep"),
		Width:        6,
		Height:       4,
		Logging:      app.Logging{LogLevel: "debug", LogFormat: "text"},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg, err := app.NewSweepConfig(*cfg)
	require.NoError(t, err)

	logBuffer := &app.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, cfg.Logging, modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			Dir:       tmpDir,
		}
	}

	written, runErr := testApp.Sweep(ctx, cfg)

	if os.Getenv("SWEEPKIT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Written:   written,
		Dir:       tmpDir,
	}
}
