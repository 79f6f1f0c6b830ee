package widget

import (
	"fmt"

	"github.com/go-drift/neutral/pkg/generator"
)

// PositionalLayout places children at explicit coordinates.
type PositionalLayout struct {
	*Layout
	handler PositionalLayoutHandler
}

// NewPositionalLayout creates a positional layout from
// PositionalLayoutCapability and attaches it to container, if non-nil.
func NewPositionalLayout(g *generator.Generator, container *Container, opts ...LayoutOption) (*PositionalLayout, error) {
	const op = "widget.NewPositionalLayout"
	inst, err := resolveInstance(g, PositionalLayoutCapability)
	if err != nil {
		return nil, err
	}
	h, err := handlerAs[PositionalLayoutHandler](op, inst)
	if err != nil {
		return nil, err
	}
	l, err := newLayout(op, inst, opts)
	if err != nil {
		return nil, err
	}
	p := &PositionalLayout{Layout: l, handler: h}
	if err := inst.attach(op, p); err != nil {
		return nil, err
	}
	if err := l.attachInitial(container); err != nil {
		return nil, err
	}
	return p, nil
}

// Add appends child to the container and places it at (x, y).
func (p *PositionalLayout) Add(child Element, x, y int) error {
	const op = "widget.PositionalLayout.Add"
	if p.container == nil {
		return treeError(op, p.String(), "positional layout has no container")
	}
	if err := p.container.Add(child); err != nil {
		return err
	}
	p.handler.Add(child, x, y)
	return nil
}

// Move places an existing child at (x, y).
func (p *PositionalLayout) Move(child Element, x, y int) error {
	if err := p.checkChild("widget.PositionalLayout.Move", child); err != nil {
		return err
	}
	p.handler.Move(child, x, y)
	return nil
}

// Remove takes child out of the container and the layout.
func (p *PositionalLayout) Remove(child Element) error {
	if err := p.checkChild("widget.PositionalLayout.Remove", child); err != nil {
		return err
	}
	p.container.Remove(child)
	p.handler.Remove(child)
	return nil
}

func (p *PositionalLayout) checkChild(op string, child Element) error {
	if isNilElement(child) {
		return treeError(op, p.String(), "nil child")
	}
	if p.container == nil || child.AsControl().parent != p.container {
		return treeError(op, p.String(), fmt.Sprintf("%s is not a child of this layout's container", child.AsControl()))
	}
	return nil
}
