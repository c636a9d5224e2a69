// Package main is the entry point for the ltfs2efu application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/ltfs2efu/internal/config"
	"github.com/joe/ltfs2efu/internal/console"
	"github.com/joe/ltfs2efu/internal/convert"
	"github.com/joe/ltfs2efu/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one conversion and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args, stdout)
	if errors.Is(err, config.ErrExitClean) {
		return convert.ExitOK
	}

	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			_, _ = fmt.Fprint(stderr, usageErr.Usage)
		}

		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)

		return convert.ExitUsage
	}

	logger, closeLog, err := config.NewLogger(cfg, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return convert.ExitUsage
	}

	defer func() {
		_ = closeLog()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := console.New(stdout, stderr, console.Options{Quiet: cfg.Quiet, Verbose: cfg.Verbose})

	engine, err := convert.NewEngine(cfg.Input, cfg.Output)
	if err != nil {
		out.Error(err, "")
		return convert.ExitCode(err)
	}

	defer engine.Close()

	engine.Separator = cfg.Separator
	engine.MaxDepth = cfg.MaxDepth
	engine.Include = cfg.Include
	engine.Exclude = cfg.Exclude
	engine.Logger = logger

	logger.Debug("starting conversion", slog.String("input", cfg.Input), slog.String("output", cfg.Output))

	var result *convert.Result

	if cfg.Progress && isTerminal(stdout) {
		result, err = tui.Run(ctx, engine, cfg.Input, cfg.Output, stdout)
	} else {
		out.Banner(cfg.Input, cfg.Output)
		engine.SetEventEmitter(out)
		result, err = engine.Run(ctx)
	}

	if err != nil {
		out.Error(err, cfg.Input)
		return convert.ExitCode(err)
	}

	if !cfg.Progress || !isTerminal(stdout) {
		out.Summary(result)
	}

	return convert.ExitOK
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int
}
