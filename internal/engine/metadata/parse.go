package metadata

import (
	"path/filepath"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
)

// parseConfig populates meta from a merged config.ConfigValue, mirroring
// original_source/source/package_metadata.cc's ParseConfigIntoMetadata.
func parseConfig(value ports.ConfigValue, packagePath string, meta *domain.UnconsolidatedMetadata, placeholders ports.PlaceholderTable) error {
	switch t, _ := asString(value["package_type"]); t {
	case "", "application":
		meta.Type = domain.Application
	case "library":
		meta.Type = domain.Library
	default:
		return zerr.With(zerr.Wrap(domain.ErrConfig, "unknown package type"), "package_type", t)
	}

	meta.BuildCommands = make(map[string]string)
	for ext, cmd := range asStringMap(value["build_commands"]) {
		meta.BuildCommands["."+ext] = cmd
	}

	meta.LinkerCommand, _ = asString(value["linker_command"])
	meta.StaticLinkerCommand, _ = asString(value["static_linker_command"])
	meta.OutputExtension, _ = asString(value["output_extension"])

	meta.NoOutputFile = asBool(value["no_output_file"])
	if !meta.NoOutputFile {
		meta.SourceDirectories = asStringSlice(value["source_directories"])
	}
	meta.PublicIncludeDirectories = asStringSlice(value["public_include_directories"])
	meta.PrivateIncludeDirectories = asStringSlice(value["include_directories"])
	meta.PublicDefines = asStringSlice(value["public_defines"])
	meta.PrivateDefines = asStringSlice(value["defines"])
	meta.Dependencies = asStringSlice(value["dependencies"])
	meta.AssetDirectories = asStringSlice(value["asset_directories"])
	meta.StaticallyLink = asBool(value["statically_link"])

	for _, f := range asStringSlice(value["files_to_ignore"]) {
		meta.FilesToIgnore = append(meta.FilesToIgnore, filepath.Join(packagePath, f))
	}

	meta.ShouldSkip = asBool(value["should_skip"])

	if priority, ok := asInt(value["include_priority"]); ok {
		meta.IncludePriority = priority
	} else {
		meta.IncludePriority = defaultIncludePriority
	}

	if dest, ok := asString(value["destination_directory"]); ok && dest != "" {
		meta.DestinationDirectory = placeholders.Expand(dest)
	}

	for _, repo := range asConfigValueSlice(value["third_party_repositories"]) {
		name, _ := asString(repo["name"])
		url, _ := asString(repo["url"])
		if name == "" || url == "" {
			continue
		}
		meta.ThirdPartyRepositories = append(meta.ThirdPartyRepositories, domain.ThirdPartyRepository{Name: name, URL: url})
	}

	return nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b > 0
	}
	return false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	return out
}

func asConfigValueSlice(v any) []ports.ConfigValue {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]ports.ConfigValue, 0, len(items))
	for _, item := range items {
		switch m := item.(type) {
		case map[string]any:
			out = append(out, ports.ConfigValue(m))
		case ports.ConfigValue:
			out = append(out, m)
		}
	}
	return out
}
