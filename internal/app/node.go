package app

import (
	"context"

	"github.com/AndrewAPrice/rebs/internal/adapters/config"
	"github.com/AndrewAPrice/rebs/internal/adapters/fs"
	"github.com/AndrewAPrice/rebs/internal/adapters/logger"
	"github.com/AndrewAPrice/rebs/internal/adapters/shell"
	"github.com/AndrewAPrice/rebs/internal/adapters/thirdparty"
	"github.com/AndrewAPrice/rebs/internal/adapters/toolinghint"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "app.components"

// init registers the Components node, manually pulling each dependency
// with graft.Dep rather than calling NewComponents with deps resolved by
// reflection, mirroring traiproject-same/internal/app/node.go's
// runComponentsNode.
func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			shell.NodeID,
			thirdparty.NodeID,
			toolinghint.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	thirdPartyFetcher, err := graft.Dep[ports.ThirdPartyFetcher](ctx)
	if err != nil {
		return nil, err
	}
	toolingHintEmitter, err := graft.Dep[ports.ToolingHintEmitter](ctx)
	if err != nil {
		return nil, err
	}

	// Scanner and Copier have no dependencies of their own and are not
	// registered as separate graft nodes; they are plain, stateless
	// adapters constructed directly here.
	scanner := fs.NewWalker()
	copier := fs.NewCopier()

	return NewComponents(log, configLoader, executor, scanner, copier, thirdPartyFetcher, toolingHintEmitter), nil
}
