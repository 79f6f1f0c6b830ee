package widget

import (
	"fmt"

	"github.com/go-drift/neutral/pkg/errors"
)

// Update re-flows the layout's subtree. Walking the container's children
// depth first in insertion order, each child container's own subtree is
// updated before that child's layout handler; this layout's handler runs
// last. Containers without a layout are walked through but call nothing.
//
// The walk is planned before any handler runs. If the tree contains a
// cycle, a layout in it is already updating, or a layout in it is between
// BeginInit and EndInit, Update fails and no handler is called.
func (l *Layout) Update() error {
	const op = "widget.Layout.Update"
	plan, err := l.planUpdate(op)
	if err != nil {
		return err
	}
	for _, p := range plan {
		p.updating = true
	}
	defer func() {
		for _, p := range plan {
			p.updating = false
		}
	}()
	for _, p := range plan {
		p.handler.Update()
	}
	return nil
}

func (l *Layout) planUpdate(op string) ([]*Layout, error) {
	if err := l.checkUpdatable(op); err != nil {
		return nil, err
	}
	var plan []*Layout
	if l.container != nil {
		visited := map[*Container]struct{}{l.container: {}}
		if err := planChildren(op, l.container, visited, &plan); err != nil {
			return nil, err
		}
	}
	return append(plan, l), nil
}

// planChildren appends, in post order, the layouts of c's descendants.
func planChildren(op string, c *Container, visited map[*Container]struct{}, plan *[]*Layout) error {
	for _, child := range c.children {
		p, ok := child.(Parent)
		if !ok {
			continue
		}
		cc := p.AsContainer()
		if _, seen := visited[cc]; seen {
			return treeError(op, cc.String(), "cycle detected during update")
		}
		visited[cc] = struct{}{}
		if err := planChildren(op, cc, visited, plan); err != nil {
			return err
		}
		if cc.layout != nil {
			if err := cc.layout.checkUpdatable(op); err != nil {
				return err
			}
			*plan = append(*plan, cc.layout)
		}
	}
	return nil
}

func (l *Layout) checkUpdatable(op string) error {
	if l.updating {
		return treeError(op, l.String(), "re-entrant update")
	}
	if l.initializing {
		return errors.Raise(op, errors.KindLifecycle, &errors.LifecycleError{
			Layout: l.String(),
			From:   "initializing",
			Event:  "update",
		})
	}
	return nil
}

// LoadTree runs the load lifecycle over this layout and every layout below
// it: OnPreLoad for all of them parent first, then OnLoad for all, then
// OnLoadComplete for all, so every descendant is loaded before any load
// completes. Each phase only touches layouts still waiting for it, so
// calling LoadTree again after adding a subtree loads just the new layouts.
// The first error stops the walk.
func (l *Layout) LoadTree() error {
	const op = "widget.Layout.LoadTree"
	layouts, err := l.preorder(op)
	if err != nil {
		return err
	}
	phases := []struct {
		from LoadState
		fire func(*Layout) error
	}{
		{StateUnloaded, (*Layout).OnPreLoad},
		{StatePreLoading, (*Layout).OnLoad},
		{StateLoaded, (*Layout).OnLoadComplete},
	}
	for _, phase := range phases {
		for _, x := range layouts {
			if x.state != phase.from {
				continue
			}
			if err := phase.fire(x); err != nil {
				return err
			}
		}
	}
	return nil
}

// preorder returns l followed by the layouts of its descendants, parent
// first, in insertion order.
func (l *Layout) preorder(op string) ([]*Layout, error) {
	out := []*Layout{l}
	if l.container == nil {
		return out, nil
	}
	visited := map[*Container]struct{}{l.container: {}}
	var walk func(c *Container) error
	walk = func(c *Container) error {
		for _, child := range c.children {
			p, ok := child.(Parent)
			if !ok {
				continue
			}
			cc := p.AsContainer()
			if _, seen := visited[cc]; seen {
				return treeError(op, cc.String(), fmt.Sprintf("cycle detected below %s", c))
			}
			visited[cc] = struct{}{}
			if cc.layout != nil {
				out = append(out, cc.layout)
			}
			if err := walk(cc); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(l.container); err != nil {
		return nil, err
	}
	return out, nil
}
