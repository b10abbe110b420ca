package app

import (
	"context"

	"github.com/AndrewAPrice/rebs/internal/engine/planner"
	"go.trai.ch/zerr"
)

// build resolves the invocation's input packages, plans every stage up to
// and including asset copying, and executes the resulting plan
// (SPEC_FULL.md §4.9 "Build").
func (bc *buildContext) build(ctx context.Context) error {
	plan, _, err := bc.planBuild()
	if err != nil {
		return err
	}
	return bc.newQueue().Execute(ctx, plan.Commands)
}

// run builds, then additionally enqueues and executes a Run-stage command
// per resolved input application, inside the same plan so the barrier
// between CopyAssets and Run is honored by a single queue pass
// (SPEC_FULL.md §4.9 "Run").
func (bc *buildContext) run(ctx context.Context) error {
	plan, names, err := bc.planBuild()
	if err != nil {
		return err
	}
	if err := bc.planner.PlanRun(names, "", plan); err != nil {
		return zerr.Wrap(err, "failed to plan run")
	}
	return bc.newQueue().Execute(ctx, plan.Commands)
}

// planBuild resolves the invocation's input names and plans them,
// scanning every configured package directory first so dependencies
// named only inside package configuration (never passed on the command
// line) can still be found by the catalog.
func (bc *buildContext) planBuild() (*planner.Plan, []string, error) {
	names, err := bc.resolveInputNames()
	if err != nil {
		return nil, nil, err
	}
	bc.scanPackageDirectories()

	plan, err := bc.planner.Plan(names)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to plan build")
	}
	return plan, names, nil
}
