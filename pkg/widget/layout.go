package widget

import (
	"fmt"

	"github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
)

// LoadState is a layout's position in its load lifecycle.
type LoadState int

const (
	// StateUnloaded is the initial state.
	StateUnloaded LoadState = iota
	// StatePreLoading follows OnPreLoad.
	StatePreLoading
	// StateLoaded follows OnLoad.
	StateLoaded
	// StateLoadComplete follows OnLoadComplete.
	StateLoadComplete
)

func (s LoadState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StatePreLoading:
		return "pre-loading"
	case StateLoaded:
		return "loaded"
	case StateLoadComplete:
		return "load-complete"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// DoubleLoadPolicy decides what a repeated OnPreLoad, OnLoad or
// OnLoadComplete does.
type DoubleLoadPolicy int

const (
	// RejectDoubleLoad fails with a DoubleLoadError and fires nothing.
	RejectDoubleLoad DoubleLoadPolicy = iota
	// RefireDoubleLoad fires listeners and the handler again without
	// changing state.
	RefireDoubleLoad
)

func (p DoubleLoadPolicy) String() string {
	if p == RefireDoubleLoad {
		return "refire"
	}
	return "reject"
}

// ParseDoubleLoadPolicy parses "reject" or "refire". The empty string is reject.
func ParseDoubleLoadPolicy(s string) (DoubleLoadPolicy, error) {
	switch s {
	case "", "reject":
		return RejectDoubleLoad, nil
	case "refire":
		return RefireDoubleLoad, nil
	}
	return RejectDoubleLoad, fmt.Errorf("unknown double-load policy %q (use reject or refire)", s)
}

// LayoutOption configures a Layout.
type LayoutOption func(*Layout)

// WithDoubleLoadPolicy sets how repeated loads are handled.
func WithDoubleLoadPolicy(p DoubleLoadPolicy) LayoutOption {
	return func(l *Layout) { l.policy = p }
}

// WithInnerLayout makes the new layout a wrapper around inner, which then
// answers InnerLayout.
func WithInnerLayout(inner *Layout) LayoutOption {
	return func(l *Layout) { l.inner = inner }
}

// Layout drives lifecycle and update propagation for its container's subtree.
// The layout refers to its container; it does not own it.
type Layout struct {
	*Instance
	handler   LayoutHandler
	container *Container

	state        LoadState
	initializing bool
	updating     bool
	policy       DoubleLoadPolicy
	inner        *Layout

	preLoad      listeners
	load         listeners
	loadComplete listeners
}

// NewLayout creates a layout whose handler comes from capability c, which
// must produce a LayoutHandler. A non-nil container is attached as part of
// construction; if attaching fails no layout is returned.
func NewLayout(g *generator.Generator, c generator.Capability, container *Container, opts ...LayoutOption) (*Layout, error) {
	const op = "widget.NewLayout"
	inst, err := resolveInstance(g, c)
	if err != nil {
		return nil, err
	}
	return buildLayout(op, inst, container, opts)
}

// NewLayoutWithHandler creates a layout around an existing handler.
func NewLayoutWithHandler(g *generator.Generator, h LayoutHandler, container *Container, opts ...LayoutOption) (*Layout, error) {
	const op = "widget.NewLayoutWithHandler"
	inst, err := adoptInstance(op, g, h)
	if err != nil {
		return nil, err
	}
	return buildLayout(op, inst, container, opts)
}

func buildLayout(op string, inst *Instance, container *Container, opts []LayoutOption) (*Layout, error) {
	l, err := newLayout(op, inst, opts)
	if err != nil {
		return nil, err
	}
	if err := inst.attach(op, l); err != nil {
		return nil, err
	}
	if err := l.attachInitial(container); err != nil {
		return nil, err
	}
	return l, nil
}

func newLayout(op string, inst *Instance, opts []LayoutOption) (*Layout, error) {
	h, err := handlerAs[LayoutHandler](op, inst)
	if err != nil {
		return nil, err
	}
	l := &Layout{Instance: inst, handler: h}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Layout) attachInitial(container *Container) error {
	if container == nil {
		return nil
	}
	return l.SetContainer(container)
}

// Container returns the container the layout belongs to, or nil.
func (l *Layout) Container() *Container {
	return l.container
}

// SetContainer moves the layout to c, notifying the handler once via
// AttachedToContainer. Assigning the current container does nothing.
// Passing nil detaches the layout. It fails if c already owns another layout.
func (l *Layout) SetContainer(c *Container) error {
	if c == l.container {
		return nil
	}
	if c != nil && c.layout != nil && c.layout != l {
		return treeError("widget.Layout.SetContainer", c.String(),
			fmt.Sprintf("already has layout %s; detach it first", c.layout))
	}
	if old := l.container; old != nil && old.layout == l {
		old.layout = nil
		old.handler.SetLayout(nil)
	}
	l.container = c
	if c != nil {
		c.layout = l
		c.handler.SetLayout(l.handler)
	}
	l.handler.AttachedToContainer()
	return nil
}

// Controls returns the children of the layout's container.
func (l *Layout) Controls() []Element {
	if l.container == nil {
		return nil
	}
	return l.container.Controls()
}

// ParentLayout returns the layout of the container enclosing this layout's
// container, or nil.
func (l *Layout) ParentLayout() *Layout {
	if l.container == nil {
		return nil
	}
	return l.container.ParentLayout()
}

// InnerLayout returns the layout that does the arranging: the innermost
// layout this one wraps, or l itself.
func (l *Layout) InnerLayout() *Layout {
	if l.inner != nil {
		return l.inner.InnerLayout()
	}
	return l
}

// State returns the lifecycle state.
func (l *Layout) State() LoadState {
	return l.state
}

// Loaded reports whether OnLoad has fired.
func (l *Layout) Loaded() bool {
	return l.state >= StateLoaded
}

// Policy returns the double-load policy.
func (l *Layout) Policy() DoubleLoadPolicy {
	return l.policy
}

// Initializing reports whether the layout is between BeginInit and EndInit.
func (l *Layout) Initializing() bool {
	return l.initializing
}

// BeginInit marks the start of bulk construction. Update fails until EndInit.
func (l *Layout) BeginInit() {
	l.initializing = true
}

// EndInit ends bulk construction. Calls do not nest: one EndInit clears any
// number of BeginInit calls, and EndInit alone is a no-op.
func (l *Layout) EndInit() {
	l.initializing = false
}

// AddPreLoadListener registers fn to run on OnPreLoad, before the handler.
// The returned function unregisters it.
func (l *Layout) AddPreLoadListener(fn func(*Layout)) func() {
	return l.preLoad.add(fn)
}

// AddLoadListener registers fn to run on OnLoad, before the handler.
func (l *Layout) AddLoadListener(fn func(*Layout)) func() {
	return l.load.add(fn)
}

// AddLoadCompleteListener registers fn to run on OnLoadComplete, before the handler.
func (l *Layout) AddLoadCompleteListener(fn func(*Layout)) func() {
	return l.loadComplete.add(fn)
}

// OnPreLoad fires pre-load listeners, then the handler. Pre-loading a layout
// that has already pre-loaded is governed by the double-load policy.
func (l *Layout) OnPreLoad() error {
	const op = "widget.Layout.OnPreLoad"
	if l.state == StateUnloaded {
		l.state = StatePreLoading
	} else if l.policy == RejectDoubleLoad {
		return errors.Raise(op, errors.KindLifecycle, &errors.DoubleLoadError{Layout: l.String(), Phase: "pre-load"})
	}
	l.preLoad.fire(l)
	l.handler.OnPreLoad()
	return nil
}

// OnLoad marks the layout loaded, fires load listeners, then the handler.
// It requires a preceding OnPreLoad. Loading an already loaded layout is
// governed by the double-load policy.
func (l *Layout) OnLoad() error {
	const op = "widget.Layout.OnLoad"
	switch l.state {
	case StatePreLoading:
		l.state = StateLoaded
	case StateLoaded, StateLoadComplete:
		if l.policy == RejectDoubleLoad {
			return errors.Raise(op, errors.KindLifecycle, &errors.DoubleLoadError{Layout: l.String(), Phase: "load"})
		}
	default:
		return l.lifecycleError(op, "load")
	}
	l.load.fire(l)
	l.handler.OnLoad()
	return nil
}

// OnLoadComplete fires load-complete listeners, then the handler. It
// requires the layout to be loaded.
func (l *Layout) OnLoadComplete() error {
	const op = "widget.Layout.OnLoadComplete"
	switch l.state {
	case StateLoaded:
		l.state = StateLoadComplete
	case StateLoadComplete:
		if l.policy == RejectDoubleLoad {
			return errors.Raise(op, errors.KindLifecycle, &errors.DoubleLoadError{Layout: l.String(), Phase: "load-complete"})
		}
	default:
		return l.lifecycleError(op, "load-complete")
	}
	l.loadComplete.fire(l)
	l.handler.OnLoadComplete()
	return nil
}

func (l *Layout) lifecycleError(op, event string) error {
	return errors.Raise(op, errors.KindLifecycle, &errors.LifecycleError{
		Layout: l.String(),
		From:   l.state.String(),
		Event:  event,
	})
}

func (l *Layout) String() string {
	if l.container != nil {
		return l.container.String() + " layout"
	}
	return l.Instance.String()
}

// listeners is an ordered set of lifecycle callbacks.
type listeners struct {
	nextID  int
	entries []listener
}

type listener struct {
	id int
	fn func(*Layout)
}

func (ls *listeners) add(fn func(*Layout)) func() {
	if fn == nil {
		return func() {}
	}
	id := ls.nextID
	ls.nextID++
	ls.entries = append(ls.entries, listener{id: id, fn: fn})
	return func() {
		for i, e := range ls.entries {
			if e.id == id {
				ls.entries = append(ls.entries[:i:i], ls.entries[i+1:]...)
				return
			}
		}
	}
}

// fire calls a snapshot of the listeners so callbacks may unregister themselves.
func (ls *listeners) fire(l *Layout) {
	snapshot := ls.entries
	for _, e := range snapshot {
		e.fn(l)
	}
}
