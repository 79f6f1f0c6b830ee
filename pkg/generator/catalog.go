package generator

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/go-drift/neutral/pkg/errors"
)

// APIVersion is the version of the handler contracts this core exposes.
// Backends declare the version they target; the major versions must match
// and the backend may not target a newer minor than the core provides.
const APIVersion = "v1.2.0"

// catalog holds the process-wide set of known generators.
type catalog struct {
	mu         sync.RWMutex
	generators map[string]*Generator
	def        *Generator
}

var generators = &catalog{generators: make(map[string]*Generator)}

// CheckAPIVersion reports whether a backend targeting version v can run
// against this core.
func CheckAPIVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrIncompatibleAPI, v)
	}
	if semver.Major(v) != semver.Major(APIVersion) {
		return fmt.Errorf("%w: %s targets %s, core provides %s", ErrIncompatibleAPI, v, semver.Major(v), semver.Major(APIVersion))
	}
	if semver.Compare(v, APIVersion) > 0 {
		return fmt.Errorf("%w: %s is newer than core %s", ErrIncompatibleAPI, v, APIVersion)
	}
	return nil
}

// RegisterGenerator adds g to the catalog. The first generator registered
// becomes the default unless SetDefault is called.
func RegisterGenerator(g *Generator) error {
	const op = "generator.RegisterGenerator"
	if g == nil || g.id == "" {
		return errors.Raise(op, errors.KindResolve, ErrNoGenerator)
	}
	if err := CheckAPIVersion(g.apiVersion); err != nil {
		return errors.RaiseFor(op, errors.KindResolve, g.id, "", err)
	}

	generators.mu.Lock()
	defer generators.mu.Unlock()
	if _, ok := generators.generators[g.id]; ok {
		return errors.RaiseFor(op, errors.KindResolve, g.id, "", fmt.Errorf("%w: %s", ErrDuplicateGenerator, g.id))
	}
	generators.generators[g.id] = g
	if generators.def == nil {
		generators.def = g
	}
	return nil
}

// Lookup returns the registered generator with the given ID.
func Lookup(id string) (*Generator, error) {
	generators.mu.RLock()
	g, ok := generators.generators[id]
	generators.mu.RUnlock()
	if !ok {
		return nil, errors.RaiseFor("generator.Lookup", errors.KindResolve, id, "", fmt.Errorf("%w: %s", ErrGeneratorNotFound, id))
	}
	return g, nil
}

// Generators returns the IDs of all registered generators, sorted.
func Generators() []string {
	generators.mu.RLock()
	ids := make([]string, 0, len(generators.generators))
	for id := range generators.generators {
		ids = append(ids, id)
	}
	generators.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// SetDefault makes g the process default generator. Passing nil clears it.
func SetDefault(g *Generator) {
	generators.mu.Lock()
	generators.def = g
	generators.mu.Unlock()
}

// Default returns the process default generator, or nil if none is set.
func Default() *Generator {
	generators.mu.RLock()
	defer generators.mu.RUnlock()
	return generators.def
}

// ResetForTest clears the catalog and the default generator.
// This should only be called from tests.
func ResetForTest() {
	generators.mu.Lock()
	generators.generators = make(map[string]*Generator)
	generators.def = nil
	generators.mu.Unlock()
}
