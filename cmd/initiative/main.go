// Package main is the entry point for the initiative CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/cli"
	"github.com/runoshun/initiative/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is replaced in tests.
var newRootCommand = cli.NewRootCommand

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd)
	if err != nil {
		// The git store backend needs a repository; help and version still work
		if errors.Is(err, domain.ErrNotGitRepository) {
			return runWithoutContainer(err)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	return newRootCommand(container, version).Execute()
}

// runWithoutContainer runs commands that need no store, or returns storeErr.
func runWithoutContainer(storeErr error) error {
	if !canRunWithoutContainer(os.Args[1:]) {
		return storeErr
	}
	return newRootCommand(nil, version).Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
