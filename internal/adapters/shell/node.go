package shell

import (
	"context"

	"github.com/AndrewAPrice/rebs/internal/adapters/logger"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Executor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})
}
