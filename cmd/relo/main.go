// Package main is the entry point for the relo bundler.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/relo/cmd/relo/commands"
	"go.trai.ch/relo/internal/app"
	"go.trai.ch/relo/internal/core/domain"
	_ "go.trai.ch/relo/internal/wiring"
)

// ComponentProvider resolves the wired application components. Indirected
// so tests can substitute a fixture graph for the graft one.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	provider := func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, provider))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := provider(ctx)
	if err != nil {
		// No logger yet when wiring itself failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, domain.ErrBundleFailed) {
			// Bundle failures were already rendered stage by stage;
			// everything else still needs to be reported.
			components.Logger.Error(err)
		}
		return 1
	}
	return 0
}
