package widget

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
)

// Parent is implemented by containers and by widgets embedding a Container.
type Parent interface {
	Element
	AsContainer() *Container
}

// Container is a control holding an ordered list of children and at most
// one Layout. Insertion order is traversal order.
type Container struct {
	Control
	handler  ContainerHandler
	children []Element
	layout   *Layout
}

// NewContainer creates a container whose handler comes from capability c,
// which must produce a ContainerHandler.
func NewContainer(g *generator.Generator, c generator.Capability) (*Container, error) {
	const op = "widget.NewContainer"
	inst, err := resolveInstance(g, c)
	if err != nil {
		return nil, err
	}
	h, err := handlerAs[ContainerHandler](op, inst)
	if err != nil {
		return nil, err
	}
	ct := &Container{handler: h}
	if err := ct.Control.init(op, inst); err != nil {
		return nil, err
	}
	if err := inst.attach(op, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// AsContainer returns c; it lets embedding widgets satisfy Parent.
func (c *Container) AsContainer() *Container {
	return c
}

// Controls returns the children in insertion order.
func (c *Container) Controls() []Element {
	return slices.Clone(c.children)
}

// Len returns the number of children.
func (c *Container) Len() int {
	return len(c.children)
}

// Add appends children. Either all are added or, on error, none.
func (c *Container) Add(children ...Element) error {
	if err := c.checkChildren("widget.Container.Add", children); err != nil {
		return err
	}
	for _, child := range children {
		child.AsControl().parent = c
	}
	c.children = append(c.children, children...)
	return nil
}

// Insert places child at index i.
func (c *Container) Insert(i int, child Element) error {
	const op = "widget.Container.Insert"
	if i < 0 || i > len(c.children) {
		return treeError(op, c.String(), fmt.Sprintf("insert index %d out of range [0,%d]", i, len(c.children)))
	}
	if err := c.checkChildren(op, []Element{child}); err != nil {
		return err
	}
	child.AsControl().parent = c
	c.children = slices.Insert(c.children, i, child)
	return nil
}

// Remove detaches child and reports whether it was a child of c.
func (c *Container) Remove(child Element) bool {
	if isNilElement(child) {
		return false
	}
	ctl := child.AsControl()
	i := slices.IndexFunc(c.children, func(e Element) bool { return e.AsControl() == ctl })
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	ctl.parent = nil
	return true
}

// Layout returns the container's layout, or nil.
func (c *Container) Layout() *Layout {
	return c.layout
}

// InnerLayout returns the innermost layout behind c's layout, or nil.
func (c *Container) InnerLayout() *Layout {
	if c.layout == nil {
		return nil
	}
	return c.layout.InnerLayout()
}

// SetLayout attaches l to c. Passing nil detaches the current layout.
// Attaching over a different layout fails; detach it first.
func (c *Container) SetLayout(l *Layout) error {
	if l == nil {
		c.DetachLayout()
		return nil
	}
	return l.SetContainer(c)
}

// DetachLayout removes and returns the current layout, or nil.
func (c *Container) DetachLayout() *Layout {
	l := c.layout
	if l != nil {
		// Detaching never fails.
		_ = l.SetContainer(nil)
	}
	return l
}

// ParentLayout returns the layout of the container holding c, or nil.
func (c *Container) ParentLayout() *Layout {
	if c.parent == nil {
		return nil
	}
	return c.parent.layout
}

// checkChildren validates candidates before any are added so that the tree
// stays acyclic and every control has at most one parent.
func (c *Container) checkChildren(op string, children []Element) error {
	seen := make(map[*Control]struct{}, len(children))
	for _, child := range children {
		if isNilElement(child) {
			return treeError(op, c.String(), "nil child")
		}
		ctl := child.AsControl()
		if _, dup := seen[ctl]; dup {
			return treeError(op, c.String(), fmt.Sprintf("%s added twice", ctl))
		}
		seen[ctl] = struct{}{}
		if ctl.parent != nil {
			return treeError(op, c.String(), fmt.Sprintf("%s already belongs to %s", ctl, ctl.parent))
		}
		if p, ok := child.(Parent); ok {
			target := p.AsContainer()
			for anc := c; anc != nil; anc = anc.parent {
				if anc == target {
					return treeError(op, c.String(), fmt.Sprintf("adding %s would create a cycle", ctl))
				}
			}
		}
	}
	return nil
}

// isNilElement reports whether e is nil or a typed nil pointer.
func isNilElement(e Element) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func treeError(op, node, reason string) error {
	return errors.Raise(op, errors.KindTree, &errors.InvalidTreeStateError{Node: node, Reason: reason})
}
