package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/sweepkit/internal/app"
	"github.com/specialistvlad/sweepkit/internal/cli"
	"github.com/specialistvlad/sweepkit/internal/wake"
)

// main is the entrypoint for the wakeat tool.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:], wake.ExecCommander{Stdout: os.Stdout, Stderr: os.Stderr}); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitRuntime)
	}
}

// run schedules the wake-up with the given command runner.
func run(outW io.Writer, args []string, cmd wake.Commander) error {
	cfg, shouldExit, err := cli.ParseWake(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	wakeApp := app.NewApp(outW, cfg.Logging)
	_, err = wakeApp.Wake(context.Background(), cfg, cmd)
	return err
}
