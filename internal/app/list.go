package app

import (
	"fmt"
	"sort"
)

// list prints every catalog entry, scanning every configured package
// directory first so --list sees the same universe a build would
// (original_source/source/main.cc's ListPackages).
func (bc *buildContext) list() error {
	bc.scanPackageDirectories()

	entries := bc.catalog.Entries()
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("All known packages:")
	for _, name := range names {
		fmt.Printf(" %s: %s\n", name, entries[name])
	}
	return nil
}
