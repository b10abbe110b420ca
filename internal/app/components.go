// Package app wires the process-lifetime adapters into an App and
// dispatches one decoded invocation at a time, grounded on
// traiproject-same/internal/app's Components/App split.
package app

import "github.com/AndrewAPrice/rebs/internal/core/ports"

// Components holds every process-lifetime, optimization-level-agnostic
// adapter. Pieces that depend on the chosen optimization level or on
// "isolated universe" mode (the temp root, catalog, package-ID store,
// dependency oracle, timestamp cache, metadata resolver, planner, queue)
// are not part of Components: graft builds Components once, before any
// invocation has been decoded, so they are instead constructed fresh by
// App.Dispatch for each invocation (SPEC_FULL.md §4.9, §6).
type Components struct {
	App *App

	Logger             ports.Logger
	ConfigLoader       ports.ConfigLoader
	Executor           ports.Executor
	Scanner            ports.SourceScanner
	Copier             ports.FileCopier
	ThirdPartyFetcher  ports.ThirdPartyFetcher
	ToolingHintEmitter ports.ToolingHintEmitter
}

// NewComponents creates a Components, wiring an App over the adapters.
func NewComponents(
	logger ports.Logger,
	configLoader ports.ConfigLoader,
	executor ports.Executor,
	scanner ports.SourceScanner,
	copier ports.FileCopier,
	thirdPartyFetcher ports.ThirdPartyFetcher,
	toolingHintEmitter ports.ToolingHintEmitter,
) *Components {
	return &Components{
		App: New(logger, configLoader, executor, scanner, copier, thirdPartyFetcher, toolingHintEmitter),

		Logger:             logger,
		ConfigLoader:       configLoader,
		Executor:           executor,
		Scanner:            scanner,
		Copier:             copier,
		ThirdPartyFetcher:  thirdPartyFetcher,
		ToolingHintEmitter: toolingHintEmitter,
	}
}
