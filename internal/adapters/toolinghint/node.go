package toolinghint

import (
	"context"

	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.tooling_hint_emitter"

func init() {
	graft.Register(graft.Node[ports.ToolingHintEmitter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ToolingHintEmitter, error) {
			return New(), nil
		},
	})
}
