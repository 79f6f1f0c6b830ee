package testbackend

import "github.com/go-drift/neutral/pkg/widget"

// base names a handler after the widget it backs. Layout handlers take the
// name of their container.
type base struct {
	rec    *Recorder
	kind   string
	widget widget.Widget
}

func (b *base) BindWidget(w widget.Widget) {
	b.widget = w
}

func (b *base) name() string {
	switch w := b.widget.(type) {
	case widget.Element:
		if n := w.AsControl().Name(); n != "" {
			return n
		}
	case interface{ Container() *widget.Container }:
		if c := w.Container(); c != nil && c.Name() != "" {
			return c.Name()
		}
	}
	return b.kind
}

func (b *base) record(method string, args ...any) {
	b.rec.record(b.name(), method, args...)
}

type controlHandler struct {
	base
}

func (h *controlHandler) Invalidate() { h.record("invalidate") }

type labelHandler struct {
	controlHandler
	text string
}

func (h *labelHandler) SetText(text string) {
	h.text = text
	h.record("setText", text)
}

func (h *labelHandler) Text() string { return h.text }

type containerHandler struct {
	controlHandler
}

func (h *containerHandler) SetLayout(l widget.LayoutHandler) {
	if l == nil {
		h.record("setLayout", "nil")
		return
	}
	h.record("setLayout")
}

type layoutHandler struct {
	base
}

func (h *layoutHandler) OnPreLoad()           { h.record("preload") }
func (h *layoutHandler) OnLoad()              { h.record("load") }
func (h *layoutHandler) OnLoadComplete()      { h.record("loadcomplete") }
func (h *layoutHandler) Update()              { h.record("update") }
func (h *layoutHandler) AttachedToContainer() { h.record("attached") }

type positionalHandler struct {
	layoutHandler
}

func (h *positionalHandler) Add(child widget.Element, x, y int) {
	h.record("add", childName(child), x, y)
}

func (h *positionalHandler) Move(child widget.Element, x, y int) {
	h.record("move", childName(child), x, y)
}

func (h *positionalHandler) Remove(child widget.Element) {
	h.record("remove", childName(child))
}

func childName(e widget.Element) string {
	if n := e.AsControl().Name(); n != "" {
		return n
	}
	return e.AsControl().String()
}
