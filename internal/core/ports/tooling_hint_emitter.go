package ports

import "github.com/AndrewAPrice/rebs/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=tooling_hint_emitter.go -destination=mocks/mock_tooling_hint_emitter.go -package=mocks

// ToolingHintEmitter emits an editor-integration hint file (a .clangd,
// SPEC_FULL.md §1/§4.9) listing every resolved package's consolidated
// compile flags, gated against the newest metadata timestamp among the
// packages it covers.
type ToolingHintEmitter interface {
	Emit(root string, packages []*domain.Package) error
}
