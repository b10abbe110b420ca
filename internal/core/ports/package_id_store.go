package ports

import "github.com/AndrewAPrice/rebs/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=package_id_store.go -destination=mocks/mock_package_id_store.go -package=mocks

// PackageIDStore maintains path → id with a monotonically increasing
// counter. IDOf inserts on miss. Flush persists the store iff it was
// mutated since load.
type PackageIDStore interface {
	IDOf(path string) domain.PackageID
	Flush() error
}
