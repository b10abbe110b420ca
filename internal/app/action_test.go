package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AndrewAPrice/rebs/internal/adapters/catalog"
	"github.com/AndrewAPrice/rebs/internal/adapters/placeholder"
	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/AndrewAPrice/rebs/internal/engine/metadata"
)

type fakeConfigLoader struct {
	byPath map[string]ports.ConfigValue
}

func (l *fakeConfigLoader) LoadGlobal() (ports.ConfigValue, int64, error) {
	return ports.ConfigValue{}, 0, nil
}

func (l *fakeConfigLoader) LoadPackage(path string, global ports.ConfigValue, globalTS int64) (ports.ConfigValue, int64, error) {
	return l.byPath[path], 1, nil
}

type fakeIDStore struct {
	next domain.PackageID
	ids  map[string]domain.PackageID
}

func newFakeIDStore() *fakeIDStore { return &fakeIDStore{ids: make(map[string]domain.PackageID)} }

func (s *fakeIDStore) IDOf(path string) domain.PackageID {
	if id, ok := s.ids[path]; ok {
		return id
	}
	id := s.next
	s.next++
	s.ids[path] = id
	return id
}

func (s *fakeIDStore) Flush() error { return nil }

type fakeFetcher struct {
	updated []domain.ThirdPartyRepository
	failOn  map[string]bool
}

func newFakeFetcher() *fakeFetcher { return &fakeFetcher{failOn: make(map[string]bool)} }

func (f *fakeFetcher) Update(_ string, repo domain.ThirdPartyRepository) error {
	if f.failOn[repo.Name] {
		return errBoom
	}
	f.updated = append(f.updated, repo)
	return nil
}

type fakeEmitter struct {
	calledWithRoot string
	packages       []*domain.Package
}

func (e *fakeEmitter) Emit(root string, packages []*domain.Package) error {
	e.calledWithRoot = root
	e.packages = packages
	return nil
}

var errBoom = &boomError{}

type boomError struct{}

func (*boomError) Error() string { return "boom" }

// newTestBuildContextWithPackages builds a buildContext directly (bypassing
// newBuildContext's filesystem/config side effects) over two on-disk
// packages: "app" depends on library "lib", and both declare a third-party
// repository.
func newTestBuildContextWithPackages(t *testing.T) (*buildContext, *fakeFetcher, *fakeEmitter) {
	t.Helper()

	tempRoot := t.TempDir()
	appPath := filepath.Join(tempRoot, "app")
	libPath := filepath.Join(tempRoot, "lib")
	for _, dir := range []string{appPath, libPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	tempDirFor := func(domain.PackageID) string {
		dir := filepath.Join(tempRoot, "pkgtemp")
		_ = os.MkdirAll(dir, 0o755)
		return dir
	}

	cat := catalog.New()
	cat.RegisterPath(appPath)
	cat.RegisterPath(libPath)

	loader := &fakeConfigLoader{byPath: map[string]ports.ConfigValue{
		appPath: {
			"package_type": "application",
			"dependencies": []any{"lib"},
			"third_party_repositories": []any{
				map[string]any{"name": "app_dep", "url": "https://example.com/app_dep.git"},
			},
		},
		libPath: {
			"package_type": "library",
			"third_party_repositories": []any{
				map[string]any{"name": "lib_dep", "url": "https://example.com/lib_dep.git"},
			},
		},
	}}

	placeholders := placeholder.New(nopLogger{})
	resolver := metadata.New(cat, loader, newFakeIDStore(), placeholders, tempDirFor, "", "", nopLogger{})

	fetcher := newFakeFetcher()
	emitter := &fakeEmitter{}
	a := &App{
		logger:             nopLogger{},
		thirdPartyFetcher:  fetcher,
		toolingHintEmitter: emitter,
	}

	bc := &buildContext{
		app:                 a,
		inv:                 domain.Invocation{InputPackages: []string{"app"}},
		optimizationRoot:    filepath.Join(tempRoot, "optimization"),
		thirdPartyCacheRoot: filepath.Join(tempRoot, "third_party"),
		catalog:             cat,
		resolver:            resolver,
	}
	return bc, fetcher, emitter
}

func TestUpdateThirdPartyWalksTheDependencyClosure(t *testing.T) {
	bc, fetcher, _ := newTestBuildContextWithPackages(t)

	if err := bc.updateThirdParty(); err != nil {
		t.Fatalf("updateThirdParty: %v", err)
	}

	if len(fetcher.updated) != 2 {
		t.Fatalf("updated = %v, want both app_dep and lib_dep", fetcher.updated)
	}
	names := map[string]bool{}
	for _, repo := range fetcher.updated {
		names[repo.Name] = true
	}
	if !names["app_dep"] || !names["lib_dep"] {
		t.Fatalf("updated = %v, want app_dep and lib_dep", fetcher.updated)
	}
}

func TestUpdateThirdPartyReturnsFirstFetcherError(t *testing.T) {
	bc, fetcher, _ := newTestBuildContextWithPackages(t)
	fetcher.failOn["lib_dep"] = true

	if err := bc.updateThirdParty(); err == nil {
		t.Fatal("expected updateThirdParty to surface the fetcher's failure")
	}
}

func TestGenerateToolingResolvesInputsAndDelegatesToEmitter(t *testing.T) {
	bc, _, emitter := newTestBuildContextWithPackages(t)

	if err := bc.generateTooling(); err != nil {
		t.Fatalf("generateTooling: %v", err)
	}
	if len(emitter.packages) != 1 {
		t.Fatalf("emitter.packages = %v, want exactly the resolved app package", emitter.packages)
	}
	if emitter.calledWithRoot == "" {
		t.Fatal("expected Emit to be called with the working directory")
	}
}

func TestCleanRemovesTheOptimizationRoot(t *testing.T) {
	bc, _, _ := newTestBuildContextWithPackages(t)
	if err := os.MkdirAll(bc.optimizationRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(bc.thirdPartyCacheRoot, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := bc.clean(false); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(bc.optimizationRoot); !os.IsNotExist(err) {
		t.Fatal("expected the optimization root to be removed")
	}
	if _, err := os.Stat(bc.thirdPartyCacheRoot); err != nil {
		t.Fatal("expected a shallow clean to leave the third-party cache alone")
	}
}

func TestDeepCleanAlsoRemovesTheThirdPartyCache(t *testing.T) {
	bc, _, _ := newTestBuildContextWithPackages(t)
	if err := os.MkdirAll(bc.optimizationRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(bc.thirdPartyCacheRoot, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := bc.clean(true); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := os.Stat(bc.thirdPartyCacheRoot); !os.IsNotExist(err) {
		t.Fatal("expected deep clean to remove the third-party cache")
	}
}

func TestListScansPackageDirectoriesWithoutError(t *testing.T) {
	bc, _, _ := newTestBuildContextWithPackages(t)
	if err := bc.list(); err != nil {
		t.Fatalf("list: %v", err)
	}
}
