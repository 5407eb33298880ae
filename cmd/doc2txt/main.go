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
	"github.com/specialistvlad/sweepkit/internal/docconv"
)

// main is the entrypoint for the doc2txt tool.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitRuntime)
	}
}

// run converts every input; any failed input makes the run fail.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.ParseConvert(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	convertApp := app.NewApp(outW, cfg.Logging)
	_, err = convertApp.Convert(context.Background(), cfg, docconv.ExecRunner{})
	return err
}
