// Package main is the entry point for the pinset CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pinset/cmd/pinset/commands"
	"go.trai.ch/pinset/internal/app"
	"go.trai.ch/pinset/internal/core/domain"
	_ "go.trai.ch/pinset/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = components.Tracer.Shutdown(context.Background())
	}()

	// 2. Interface - CLI
	cli := commands.New(components.App, components.Logger)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrValidationFailed) ||
			errors.Is(err, domain.ErrLockDrift) ||
			errors.Is(err, domain.ErrLockNotFound) {
			// The command already rendered the findings.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
