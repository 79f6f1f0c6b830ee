package generator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-drift/neutral/pkg/errors"
)

// Factory produces a fresh handler for one capability.
type Factory func() any

// Platform describes the kind of target a generator renders to.
type Platform struct {
	Desktop bool
	Mobile  bool
}

type binding struct {
	capability Capability
	factory    Factory
}

// Generator is a named collection of capability to factory bindings,
// representing one backend. Registration and resolution are safe for
// concurrent use, though backends are expected to register everything
// before the first widget is constructed.
type Generator struct {
	id         string
	apiVersion string
	platform   Platform

	mu       sync.RWMutex
	bindings map[string]binding
}

// Option configures a Generator.
type Option func(*Generator)

// WithAPIVersion declares the core API version (semver) the backend was
// written against. Defaults to APIVersion.
func WithAPIVersion(v string) Option {
	return func(g *Generator) { g.apiVersion = v }
}

// WithPlatform sets the platform metadata.
func WithPlatform(p Platform) Option {
	return func(g *Generator) { g.platform = p }
}

// New creates an empty generator.
func New(id string, opts ...Option) *Generator {
	g := &Generator{
		id:         id,
		apiVersion: APIVersion,
		platform:   Platform{Desktop: true},
		bindings:   make(map[string]binding),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the generator's identifier.
func (g *Generator) ID() string {
	if g == nil {
		return ""
	}
	return g.id
}

// APIVersion returns the API version the backend targets.
func (g *Generator) APIVersion() string {
	return g.apiVersion
}

// Platform returns the platform metadata.
func (g *Generator) Platform() Platform {
	return g.platform
}

// Register binds a capability to a factory. Registering the same capability
// again replaces the previous binding.
func (g *Generator) Register(c Capability, f Factory) error {
	if c.IsZero() {
		return errors.RaiseFor("generator.Register", errors.KindResolve, g.id, "", ErrInvalidCapability)
	}
	if f == nil {
		return errors.RaiseFor("generator.Register", errors.KindResolve, g.id, c.name, ErrNilFactory)
	}
	g.mu.Lock()
	g.bindings[c.name] = binding{capability: c, factory: f}
	g.mu.Unlock()
	return nil
}

// Supports reports whether the generator has a binding for c.
func (g *Generator) Supports(c Capability) bool {
	g.mu.RLock()
	_, ok := g.bindings[c.name]
	g.mu.RUnlock()
	return ok
}

// Capabilities returns the bound capabilities sorted by name.
func (g *Generator) Capabilities() []Capability {
	g.mu.RLock()
	caps := make([]Capability, 0, len(g.bindings))
	for _, b := range g.bindings {
		caps = append(caps, b.capability)
	}
	g.mu.RUnlock()
	sort.Slice(caps, func(i, j int) bool { return caps[i].name < caps[j].name })
	return caps
}

// Resolve invokes the factory bound to c and returns the new handler.
// It fails with a CapabilityNotFoundError if c is not bound, and never
// returns a nil handler.
func (g *Generator) Resolve(c Capability) (any, error) {
	const op = "generator.Resolve"
	if g == nil {
		return nil, errors.RaiseFor(op, errors.KindResolve, "", c.name, ErrNoGenerator)
	}
	if c.IsZero() {
		return nil, errors.RaiseFor(op, errors.KindResolve, g.id, "", ErrInvalidCapability)
	}

	g.mu.RLock()
	b, ok := g.bindings[c.name]
	g.mu.RUnlock()
	if !ok {
		return nil, errors.RaiseFor(op, errors.KindResolve, g.id, c.name, &errors.CapabilityNotFoundError{
			Generator:  g.id,
			Capability: c.name,
		})
	}

	h := b.factory()
	if isNil(h) {
		return nil, errors.RaiseFor(op, errors.KindResolve, g.id, c.name, ErrNilHandler)
	}
	if !c.accepts(h) || !b.capability.accepts(h) {
		return nil, errors.RaiseFor(op, errors.KindResolve, g.id, c.name,
			fmt.Errorf("%w: %T is not a %s", ErrHandlerMismatch, h, c.name))
	}
	return h, nil
}

// Add registers a typed factory for the capability CapabilityOf[T].
func Add[T any](g *Generator, factory func() T) error {
	c := CapabilityOf[T]()
	if factory == nil {
		return g.Register(c, nil)
	}
	return g.Register(c, func() any { return factory() })
}

// Create resolves CapabilityOf[T] and returns the handler as a T.
func Create[T any](g *Generator) (T, error) {
	var zero T
	h, err := g.Resolve(CapabilityOf[T]())
	if err != nil {
		return zero, err
	}
	// Resolve already checked the handler against T.
	return h.(T), nil
}
