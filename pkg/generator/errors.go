package generator

import "errors"

// Sentinel errors for generator operations.
var (
	// ErrNoGenerator is returned when no generator is active or given.
	ErrNoGenerator = errors.New("generator: no generator available")

	// ErrInvalidCapability is returned for the zero Capability.
	ErrInvalidCapability = errors.New("generator: invalid capability")

	// ErrNilFactory is returned when registering a nil factory.
	ErrNilFactory = errors.New("generator: nil factory")

	// ErrNilHandler is returned when a factory produces a nil handler.
	ErrNilHandler = errors.New("generator: factory returned nil handler")

	// ErrHandlerMismatch is returned when a handler does not implement its capability.
	ErrHandlerMismatch = errors.New("generator: handler does not implement capability")

	// ErrStackEmpty is returned when popping a stack with no pushed generators.
	ErrStackEmpty = errors.New("generator: context stack is empty")

	// ErrDuplicateGenerator is returned when a generator ID is registered twice.
	ErrDuplicateGenerator = errors.New("generator: duplicate generator id")

	// ErrGeneratorNotFound is returned when a generator ID is not in the catalog.
	ErrGeneratorNotFound = errors.New("generator: generator not found")

	// ErrIncompatibleAPI is returned when a backend targets an API version
	// the core cannot serve.
	ErrIncompatibleAPI = errors.New("generator: incompatible api version")
)
