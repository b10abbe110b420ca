package app

import (
	"context"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
)

// App dispatches a decoded Invocation to its action handler. It holds
// only process-lifetime adapters; everything specific to a single
// invocation (temp root, catalog, resolver, planner, queue) is built by
// newBuildContext on every call to Dispatch.
type App struct {
	logger             ports.Logger
	configLoader       ports.ConfigLoader
	executor           ports.Executor
	scanner            ports.SourceScanner
	copier             ports.FileCopier
	thirdPartyFetcher  ports.ThirdPartyFetcher
	toolingHintEmitter ports.ToolingHintEmitter
}

// New creates an App.
func New(
	logger ports.Logger,
	configLoader ports.ConfigLoader,
	executor ports.Executor,
	scanner ports.SourceScanner,
	copier ports.FileCopier,
	thirdPartyFetcher ports.ThirdPartyFetcher,
	toolingHintEmitter ports.ToolingHintEmitter,
) *App {
	return &App{
		logger:             logger,
		configLoader:       configLoader,
		executor:           executor,
		scanner:            scanner,
		copier:             copier,
		thirdPartyFetcher:  thirdPartyFetcher,
		toolingHintEmitter: toolingHintEmitter,
	}
}

// Dispatch decodes and runs inv to completion (SPEC_FULL.md §4.9). A
// standalone --update is its own action; --update combined with another
// action runs the fetch first and then proceeds to that action, matching
// invocation.cc's "update_third_party is a modifier unless no other
// action was explicitly set" rule.
func (a *App) Dispatch(ctx context.Context, inv domain.Invocation) error {
	bc, err := newBuildContext(a, inv)
	if err != nil {
		return err
	}
	defer bc.flush()

	if inv.UpdateThirdParty && inv.Action != domain.UpdateThirdParty {
		if err := bc.updateThirdParty(); err != nil {
			return err
		}
	}

	switch inv.Action {
	case domain.UpdateThirdParty:
		return bc.updateThirdParty()
	case domain.List:
		return bc.list()
	case domain.Clean:
		return bc.clean(false)
	case domain.DeepClean:
		return bc.clean(true)
	case domain.GenerateTooling:
		return bc.generateTooling()
	case domain.Build:
		return bc.build(ctx)
	case domain.Run, domain.Test:
		return bc.run(ctx)
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvocation, "unknown action"), "action", inv.Action.String())
	}
}
