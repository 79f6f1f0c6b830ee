package widget

import "github.com/go-drift/neutral/pkg/generator"

// ControlHandler is the capability every control handler implements.
type ControlHandler interface {
	// Invalidate asks the backend to redraw the control.
	Invalidate()
}

// LabelHandler renders text.
type LabelHandler interface {
	ControlHandler
	SetText(text string)
	Text() string
}

// ContainerHandler backs a Container.
type ContainerHandler interface {
	ControlHandler
	// SetLayout is called when a layout is attached (or nil when detached)
	// so the backend can rebind native parent/child plumbing.
	SetLayout(layout LayoutHandler)
}

// LayoutHandler backs a Layout.
type LayoutHandler interface {
	OnPreLoad()
	OnLoad()
	OnLoadComplete()
	Update()
	AttachedToContainer()
}

// PositionalLayoutHandler backs a layout that places children at explicit
// coordinates.
type PositionalLayoutHandler interface {
	LayoutHandler
	Add(child Element, x, y int)
	Move(child Element, x, y int)
	Remove(child Element)
}

// WidgetBinder is implemented by handlers that need a reference to the
// neutral widget they back. BindWidget is called once during construction.
type WidgetBinder interface {
	BindWidget(w Widget)
}

// Initializer is implemented by handlers that need a setup step after
// binding. An error aborts widget construction.
type Initializer interface {
	Initialize() error
}

// Capabilities for the handler contracts defined in this package.
var (
	ControlCapability          = generator.CapabilityOf[ControlHandler]()
	LabelCapability            = generator.CapabilityOf[LabelHandler]()
	ContainerCapability        = generator.CapabilityOf[ContainerHandler]()
	LayoutCapability           = generator.CapabilityOf[LayoutHandler]()
	PositionalLayoutCapability = generator.CapabilityOf[PositionalLayoutHandler]()
)
