// Package errors provides structured error handling for the neutral widget core.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindResolve indicates a capability could not be resolved to a handler.
	KindResolve
	// KindTree indicates an invalid container/layout tree operation.
	KindTree
	// KindLifecycle indicates an illegal layout lifecycle transition.
	KindLifecycle
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindResolve:
		return "resolve"
	case KindTree:
		return "tree"
	case KindLifecycle:
		return "lifecycle"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// NeutralError represents a structured error raised by the core.
type NeutralError struct {
	// Op is the operation that failed (e.g., "generator.Resolve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Generator is the ID of the generator involved, if applicable.
	Generator string
	// Capability is the capability name involved, if applicable.
	Capability string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *NeutralError) Error() string {
	if e.Generator != "" {
		return fmt.Sprintf("%s [%s] generator=%s: %v", e.Op, e.Kind, e.Generator, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *NeutralError) Unwrap() error {
	return e.Err
}

// CapabilityNotFoundError is returned when a generator has no factory bound
// for the requested capability.
type CapabilityNotFoundError struct {
	// Generator is the ID of the generator that was searched.
	Generator string
	// Capability is the name of the missing capability.
	Capability string
}

func (e *CapabilityNotFoundError) Error() string {
	return fmt.Sprintf("generator %q has no handler registered for capability %s", e.Generator, e.Capability)
}

// InvalidTreeStateError is returned when an operation would corrupt the
// container tree: cycles, re-entrant updates, or a layout reassigned over
// another one without detaching it first.
type InvalidTreeStateError struct {
	// Node names the container or control where the problem was found.
	Node string
	// Reason describes the violated constraint.
	Reason string
}

func (e *InvalidTreeStateError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("invalid tree state at %s: %s", e.Node, e.Reason)
	}
	return "invalid tree state: " + e.Reason
}

// DoubleLoadError is returned when a loaded layout is asked to load again
// and its policy rejects repeated loads.
type DoubleLoadError struct {
	// Layout names the layout (usually by its container).
	Layout string
	// Phase is the lifecycle phase that was repeated ("pre-load", "load" or
	// "load-complete").
	Phase string
}

func (e *DoubleLoadError) Error() string {
	return fmt.Sprintf("layout %s: %s fired twice", e.Layout, e.Phase)
}

// LifecycleError represents an illegal layout state transition.
type LifecycleError struct {
	// Layout names the layout.
	Layout string
	// From is the state the layout was in.
	From string
	// Event is the lifecycle event that was attempted.
	Event string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("layout %s: cannot %s while %s", e.Layout, e.Event, e.From)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.trace").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the core.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *NeutralError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
