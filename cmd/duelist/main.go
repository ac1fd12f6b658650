// Package main is the entry point for the duelist CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/runoshun/duelist/internal/app"
	"github.com/runoshun/duelist/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg := app.Config{WorkDir: cwd}
	// The TUI owns the terminal, so its logs go to a file.
	if launchesTUI(args) {
		cfg.LogPath = app.LogFilePath("")
	}

	// Create dependency injection container
	container, err := app.New(ctx, cfg)
	if err != nil {
		// A broken config or store must not block help, the template or keygen
		if canRunWithoutContainer(args) {
			return cli.NewRootCommand(nil, version).ExecuteContext(ctx)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(ctx)
}

// launchesTUI reports whether args start the interactive interface.
func launchesTUI(args []string) bool {
	if len(args) == 0 {
		return true
	}
	return args[0] == "tui"
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help":
		return true
	case "config":
		return len(args) == 1 || args[1] == "template" || args[1] == "keygen"
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
