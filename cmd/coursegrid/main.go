package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/coursegrid/internal/app"
	"github.com/specialistvlad/coursegrid/internal/cli"
	"github.com/specialistvlad/coursegrid/internal/loader"
)

// exitIncomplete is the exit code when a schedule left courses out.
const exitIncomplete = 3

// main is the entrypoint for the coursegrid application.
func main() {
	// Minimal logger until the App configures its own.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode prints err to stderr and maps it to a process exit code.
func exitCode(err error) int {
	var exitErr *cli.ExitError
	switch {
	case errors.As(err, &exitErr):
		fmt.Fprintln(os.Stderr, exitErr.Message)
		return exitErr.Code
	case errors.Is(err, app.ErrIncompleteSchedule):
		fmt.Fprintln(os.Stderr, err)
		return exitIncomplete
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}

// run holds the main logic so it can be tested without exiting the process.
func run(outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	return app.NewApp(outW, errW, cfg, loader.New()).Run(context.Background())
}
