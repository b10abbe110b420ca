// Package wiring registers every Graft node the binary needs, pulled in
// purely for side effects (each adapter/engine package's init registers
// itself), mirroring traiproject-same/internal/wiring/wiring.go.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/AndrewAPrice/rebs/internal/adapters/config"
	_ "github.com/AndrewAPrice/rebs/internal/adapters/logger"
	_ "github.com/AndrewAPrice/rebs/internal/adapters/shell"
	_ "github.com/AndrewAPrice/rebs/internal/adapters/thirdparty"
	_ "github.com/AndrewAPrice/rebs/internal/adapters/toolinghint"
	// Register the app node.
	_ "github.com/AndrewAPrice/rebs/internal/app"
)
