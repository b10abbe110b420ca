// Package main is the entry point for the rebs build orchestrator.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/AndrewAPrice/rebs/cmd/rebs/commands"
	"github.com/AndrewAPrice/rebs/internal/app"
	"github.com/AndrewAPrice/rebs/internal/core/domain"
	_ "github.com/AndrewAPrice/rebs/internal/wiring"
	"github.com/grindlemire/graft"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// The logger isn't available yet if component initialization
		// itself failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrExec) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
