// Package commands implements the rebs command-line surface: a single
// root command taking package arguments and action/optimization flags,
// grounded on original_source/source/invocation.cc, with the CLI-struct-
// wrapping-cobra.Command shape of
// traiproject-same/cmd/bob/commands/root.go.
package commands

import (
	"context"

	"github.com/AndrewAPrice/rebs/internal/app"
	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/spf13/cobra"
)

// CLI wraps the root cobra.Command over an *app.App.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// flags holds every registered CLI flag's bound variable.
type flags struct {
	all        bool
	verbose    bool
	build      bool
	clean      bool
	deepClean  bool
	list       bool
	run        bool
	tooling    bool
	test       bool
	update     bool
	debug      bool
	fast       bool
	optimized  bool
}

// New creates a CLI wired to a.
func New(a *app.App) *CLI {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "rebs [packages...]",
		Short: "A build orchestrator for native package graphs",
		Long: "If no package is supplied, the working directory is assumed to be the\n" +
			"package. A package can be an absolute path, or a relative path if it\n" +
			"starts with '.'. Anything else is looked up by name.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Dispatch(cmd.Context(), decodeInvocation(f, args))
		},
	}

	rootCmd.Flags().BoolVar(&f.all, "all", false, "Apply the action to all known packages instead of the given ones.")
	rootCmd.Flags().BoolVar(&f.verbose, "verbose", false, "Print every command before running it, and run stages sequentially.")
	rootCmd.Flags().BoolVar(&f.build, "build", false, "Build but don't run.")
	rootCmd.Flags().BoolVar(&f.clean, "clean", false, "Clean the temp files for the current optimization level.")
	rootCmd.Flags().BoolVar(&f.deepClean, "deep-clean", false, "Clean temp files and any cached third-party repositories.")
	rootCmd.Flags().BoolVar(&f.list, "list", false, "List all known packages with their names and paths, then exit.")
	rootCmd.Flags().BoolVar(&f.run, "run", false, "Build and run the packages. (default)")
	rootCmd.Flags().BoolVar(&f.test, "test", false, "Build and run unit tests for the packages.")
	rootCmd.Flags().BoolVar(&f.tooling, "generate-tooling-hint", false, "Generate an editor integration hint file for the packages.")
	rootCmd.Flags().BoolVar(&f.update, "update", false, "Update third-party repositories. Can be combined with other actions.")
	rootCmd.Flags().BoolVar(&f.debug, "debug", false, "Build with all debug symbols.")
	rootCmd.Flags().BoolVar(&f.fast, "fast", false, "Quickly build, with some optimizations enabled. (default)")
	rootCmd.Flags().BoolVar(&f.optimized, "optimized", false, "Build with all optimizations enabled.")

	return &CLI{app: a, rootCmd: rootCmd}
}

// Execute runs the root command with ctx. Bash/zsh completion is handled
// entirely by cobra's built-in `completion` subcommand rather than a
// hand-rolled --complete flag (SPEC_FULL.md's SUPPLEMENTED FEATURES).
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// decodeInvocation turns the parsed flags and positional package
// arguments into a domain.Invocation. Action flags are checked in a
// fixed priority order rather than the original's "last flag on the
// command line wins", since cobra's bool flags carry no ordering
// information; this is documented as an accepted deviation in DESIGN.md.
func decodeInvocation(f flags, args []string) domain.Invocation {
	inv := domain.Invocation{
		Action:           domain.Run,
		InputPackages:    args,
		AllKnownPackages: f.all,
		UpdateThirdParty: f.update,
		Verbose:          f.verbose,
	}

	switch {
	case f.build:
		inv.Action = domain.Build
	case f.clean:
		inv.Action = domain.Clean
	case f.deepClean:
		inv.Action = domain.DeepClean
	case f.list:
		inv.Action = domain.List
	case f.tooling:
		inv.Action = domain.GenerateTooling
	case f.test:
		inv.Action = domain.Test
	case f.run:
		inv.Action = domain.Run
	case f.update:
		// Bare --update with no other action flag becomes the action
		// itself, rather than a modifier that also triggers a default
		// Run, matching invocation.cc's action_explicitly_set rule.
		inv.Action = domain.UpdateThirdParty
	}

	switch {
	case f.debug:
		inv.OptimizationLevel = domain.Debug
	case f.optimized:
		inv.OptimizationLevel = domain.Optimized
	default:
		inv.OptimizationLevel = domain.Fast
	}

	return inv
}
