// Package generator binds backend-neutral capabilities to backend handlers.
//
// A capability is a contract of operations that a backend must implement for
// one kind of neutral widget, usually expressed as a Go interface:
//
//	type LabelHandler interface {
//	    SetText(text string)
//	    Text() string
//	}
//
// A Generator maps capabilities to factories. Backends populate a generator
// at startup and add it to the catalog:
//
//	g := generator.New("gtk")
//	generator.Add[widget.LabelHandler](g, func() widget.LabelHandler { return &gtkLabel{} })
//	generator.RegisterGenerator(g)
//
// Resolving a capability always yields a fresh handler from the most
// recently registered factory, or fails with a CapabilityNotFoundError.
// A nil or no-op handler is never returned in place of a missing binding.
//
// # Scoped generators
//
// A Stack selects "the current generator" for a block of code without
// changing the process default:
//
//	err := stack.Using(direct2d, func() error {
//	    gfx, err := widget.NewInstance(stack.Current(), graphicsCapability)
//	    ...
//	})
//
// The previous generator is restored on every exit path. A Stack belongs to
// one goroutine (normally the UI goroutine); share generators, not stacks.
// To carry a generator through a call chain, use NewContext and FromContext.
package generator
