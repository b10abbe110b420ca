package ports

import "github.com/AndrewAPrice/rebs/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=third_party_fetcher.go -destination=mocks/mock_third_party_fetcher.go -package=mocks

// ThirdPartyFetcher resolves declared third-party repositories into a
// shared cache root (SPEC_FULL.md §1/§6), scoped to clone-or-update only.
type ThirdPartyFetcher interface {
	Update(cacheRoot string, repo domain.ThirdPartyRepository) error
}
