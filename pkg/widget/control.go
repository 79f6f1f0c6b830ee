package widget

import "github.com/go-drift/neutral/pkg/generator"

// Element is anything that can be placed in a Container. Embed Control (or
// a widget that embeds it) to implement Element.
type Element interface {
	Widget
	AsControl() *Control
}

// Control is the neutral base for children of a container.
type Control struct {
	*Instance
	handler ControlHandler
	name    string
	parent  *Container
}

// NewControl creates a control whose handler comes from capability c.
func NewControl(g *generator.Generator, c generator.Capability) (*Control, error) {
	const op = "widget.NewControl"
	inst, err := resolveInstance(g, c)
	if err != nil {
		return nil, err
	}
	ctl := &Control{Instance: inst}
	if err := ctl.init(op, inst); err != nil {
		return nil, err
	}
	if err := inst.attach(op, ctl); err != nil {
		return nil, err
	}
	return ctl, nil
}

func (c *Control) init(op string, inst *Instance) error {
	h, err := handlerAs[ControlHandler](op, inst)
	if err != nil {
		return err
	}
	c.Instance = inst
	c.handler = h
	return nil
}

// AsControl returns c; it lets embedding widgets satisfy Element.
func (c *Control) AsControl() *Control {
	return c
}

// Name returns the control's name.
func (c *Control) Name() string {
	return c.name
}

// SetName sets the control's name.
func (c *Control) SetName(name string) {
	c.name = name
}

// Parent returns the container holding the control, or nil.
func (c *Control) Parent() *Container {
	return c.parent
}

// Invalidate asks the backend to redraw the control.
func (c *Control) Invalidate() {
	c.handler.Invalidate()
}

func (c *Control) String() string {
	if c.name != "" {
		return c.name
	}
	return c.Instance.String()
}

// Label displays text. The text lives in the handler.
type Label struct {
	Control
	handler LabelHandler
}

// NewLabel creates a label from LabelCapability.
func NewLabel(g *generator.Generator) (*Label, error) {
	const op = "widget.NewLabel"
	inst, err := resolveInstance(g, LabelCapability)
	if err != nil {
		return nil, err
	}
	h, err := handlerAs[LabelHandler](op, inst)
	if err != nil {
		return nil, err
	}
	l := &Label{handler: h}
	if err := l.Control.init(op, inst); err != nil {
		return nil, err
	}
	if err := inst.attach(op, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Text returns the label's text.
func (l *Label) Text() string {
	return l.handler.Text()
}

// SetText sets the label's text.
func (l *Label) SetText(text string) {
	l.handler.SetText(text)
}
