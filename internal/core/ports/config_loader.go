package ports

//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks

// ConfigValue is a generic structured value decoded from a config
// document: maps, slices, and scalars, mirroring the "black-box
// text-to-structured-value transform" contract SPEC_FULL.md §1 assigns to
// the out-of-scope configuration-language evaluator.
type ConfigValue map[string]any

// ConfigLoader reads global and per-package configuration and returns the
// merged structured value together with its effective timestamp (the max
// of every contributing file's mtime).
type ConfigLoader interface {
	// LoadGlobal reads the global configuration (SPEC_FULL.md §6),
	// honoring REBS_CONFIG / HOME / USERPROFILE / local-config
	// "isolated universe" rules.
	LoadGlobal() (ConfigValue, int64, error)

	// LoadPackage reads a package's .package.rebs.jsonnet, merged over
	// the already-loaded global value. packagePath is the package's
	// canonical directory.
	LoadPackage(packagePath string, global ConfigValue, globalTS int64) (ConfigValue, int64, error)
}
