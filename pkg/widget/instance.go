package widget

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
)

// Widget is a neutral object backed by exactly one handler.
type Widget interface {
	// ID is the widget's neutral identity.
	ID() uuid.UUID
	// Generator is the generator the handler came from.
	Generator() *generator.Generator
	// Handler is the backend object; its concrete type depends on the backend.
	Handler() any
}

// Instance pairs a neutral identity with one handler. It is embedded by
// every widget in this package and can be used on its own for capabilities
// that need no tree behavior.
type Instance struct {
	id      uuid.UUID
	gen     *generator.Generator
	handler any
}

// NewInstance resolves c against g and binds the resulting handler.
// A nil g means generator.Default().
func NewInstance(g *generator.Generator, c generator.Capability) (*Instance, error) {
	inst, err := resolveInstance(g, c)
	if err != nil {
		return nil, err
	}
	if err := inst.attach("widget.NewInstance", inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// NewInstanceWithHandler adopts a handler the caller already has, skipping
// resolution.
func NewInstanceWithHandler(g *generator.Generator, handler any) (*Instance, error) {
	inst, err := adoptInstance("widget.NewInstanceWithHandler", g, handler)
	if err != nil {
		return nil, err
	}
	if err := inst.attach("widget.NewInstanceWithHandler", inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// ID returns the widget's identity.
func (i *Instance) ID() uuid.UUID {
	return i.id
}

// Generator returns the generator the handler was resolved from.
func (i *Instance) Generator() *generator.Generator {
	return i.gen
}

// Handler returns the backend handler.
func (i *Instance) Handler() any {
	return i.handler
}

func (i *Instance) String() string {
	return fmt.Sprintf("%T#%s", i.handler, i.id.String()[:8])
}

func resolveInstance(g *generator.Generator, c generator.Capability) (*Instance, error) {
	if g == nil {
		g = generator.Default()
	}
	h, err := g.Resolve(c)
	if err != nil {
		return nil, err
	}
	return &Instance{id: uuid.New(), gen: g, handler: h}, nil
}

func adoptInstance(op string, g *generator.Generator, handler any) (*Instance, error) {
	if g == nil {
		g = generator.Default()
	}
	if handler == nil {
		return nil, errors.RaiseFor(op, errors.KindResolve, g.ID(), "", generator.ErrNilHandler)
	}
	return &Instance{id: uuid.New(), gen: g, handler: handler}, nil
}

// attach runs the handler's optional construction hooks for the outermost
// widget w.
func (i *Instance) attach(op string, w Widget) error {
	if b, ok := i.handler.(WidgetBinder); ok {
		b.BindWidget(w)
	}
	if in, ok := i.handler.(Initializer); ok {
		if err := in.Initialize(); err != nil {
			return errors.RaiseFor(op, errors.KindResolve, i.gen.ID(), "", fmt.Errorf("initialize %T: %w", i.handler, err))
		}
	}
	return nil
}

// handlerAs asserts the instance's handler to T.
func handlerAs[T any](op string, i *Instance) (T, error) {
	h, ok := i.handler.(T)
	if !ok {
		var zero T
		c := generator.CapabilityOf[T]()
		return zero, errors.RaiseFor(op, errors.KindResolve, i.gen.ID(), c.Name(),
			fmt.Errorf("%w: %T is not a %s", generator.ErrHandlerMismatch, i.handler, c.Name()))
	}
	return h, nil
}
