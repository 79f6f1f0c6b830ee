// Package fixture builds widget trees from YAML descriptions.
//
//	name: root
//	layout: table
//	children:
//	  - name: title
//	    kind: label
//	    text: Hello
//	  - name: canvas
//	    layout: positional
//	    generator: neutral.mock
//	    children:
//	      - {name: dot, kind: label, x: 4, y: 8}
package fixture

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/neutral/pkg/generator"
	"github.com/go-drift/neutral/pkg/widget"
)

// Node kinds.
const (
	KindContainer = "container"
	KindLabel     = "label"
)

// Layout kinds.
const (
	LayoutNone       = "none"
	LayoutTable      = "table"
	LayoutPositional = "positional"
)

// Node describes one widget in a fixture.
type Node struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind,omitempty"`
	Layout    string `yaml:"layout,omitempty"`
	Generator string `yaml:"generator,omitempty"`
	Text      string `yaml:"text,omitempty"`
	X         int    `yaml:"x,omitempty"`
	Y         int    `yaml:"y,omitempty"`
	Children  []Node `yaml:"children,omitempty"`
}

// Parse decodes a fixture and checks its structure.
func Parse(data []byte) (*Node, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := root.validate("root"); err != nil {
		return nil, err
	}
	if root.kind() != KindContainer {
		return nil, fmt.Errorf("fixture root must be a container, got %q", root.Kind)
	}
	return &root, nil
}

// Load reads and parses the fixture at path.
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(data)
}

func (n *Node) kind() string {
	if n.Kind == "" {
		return KindContainer
	}
	return n.Kind
}

func (n *Node) layout() string {
	if n.Layout == "" {
		return LayoutNone
	}
	return n.Layout
}

func (n *Node) validate(path string) error {
	if n.Name != "" {
		path = n.Name
	}
	switch n.kind() {
	case KindContainer:
		switch n.layout() {
		case LayoutNone, LayoutTable, LayoutPositional:
		default:
			return fmt.Errorf("%s: unknown layout %q", path, n.Layout)
		}
	case KindLabel:
		if len(n.Children) > 0 {
			return fmt.Errorf("%s: a label cannot have children", path)
		}
		if n.Layout != "" {
			return fmt.Errorf("%s: a label cannot have a layout", path)
		}
	default:
		return fmt.Errorf("%s: unknown kind %q", path, n.Kind)
	}
	for i := range n.Children {
		if err := n.Children[i].validate(fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Tree is a built fixture.
type Tree struct {
	Root *widget.Container
	// Layouts lists every layout in the tree, parents before children.
	Layouts []*widget.Layout
}

// Build creates the widgets described by root. Widgets are resolved against
// the generator carried by ctx; a node naming a generator builds its subtree
// against that catalog entry instead. Every layout is held in BeginInit until
// the whole tree exists.
func Build(ctx context.Context, root *Node, opts ...widget.LayoutOption) (*Tree, error) {
	b := &builder{
		stack: generator.NewStack(generator.FromContext(ctx)),
		opts:  opts,
	}
	el, err := b.node(root)
	if err != nil {
		return nil, err
	}
	c, ok := el.(*widget.Container)
	if !ok {
		return nil, fmt.Errorf("fixture root must be a container")
	}
	for _, l := range b.layouts {
		l.EndInit()
	}
	return &Tree{Root: c, Layouts: b.layouts}, nil
}

type builder struct {
	stack   *generator.Stack
	opts    []widget.LayoutOption
	layouts []*widget.Layout
}

func (b *builder) node(n *Node) (widget.Element, error) {
	if n.Generator == "" {
		return b.build(n)
	}
	g, err := generator.Lookup(n.Generator)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.Name, err)
	}
	var el widget.Element
	err = b.stack.Using(g, func() error {
		var err error
		el, err = b.build(n)
		return err
	})
	return el, err
}

func (b *builder) build(n *Node) (widget.Element, error) {
	g := b.stack.Current()
	if n.kind() == KindLabel {
		l, err := widget.NewLabel(g)
		if err != nil {
			return nil, err
		}
		l.SetName(n.Name)
		if n.Text != "" {
			l.SetText(n.Text)
		}
		return l, nil
	}

	c, err := widget.NewContainer(g, widget.ContainerCapability)
	if err != nil {
		return nil, err
	}
	c.SetName(n.Name)

	var place func(child widget.Element, n *Node) error
	switch n.layout() {
	case LayoutTable:
		l, err := widget.NewLayout(g, widget.LayoutCapability, c, b.opts...)
		if err != nil {
			return nil, err
		}
		b.hold(l)
	case LayoutPositional:
		p, err := widget.NewPositionalLayout(g, c, b.opts...)
		if err != nil {
			return nil, err
		}
		b.hold(p.Layout)
		place = func(child widget.Element, n *Node) error { return p.Add(child, n.X, n.Y) }
	}
	if place == nil {
		place = func(child widget.Element, _ *Node) error { return c.Add(child) }
	}

	for i := range n.Children {
		child, err := b.node(&n.Children[i])
		if err != nil {
			return nil, err
		}
		if err := place(child, &n.Children[i]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (b *builder) hold(l *widget.Layout) {
	l.BeginInit()
	b.layouts = append(b.layouts, l)
}
