// Package widget provides the backend-neutral widget tree.
//
// Every widget owns exactly one handler, resolved from a generator when the
// widget is constructed and never replaced. Behavior that depends on the
// backend is forwarded to the handler; the widget itself holds no backend
// logic.
//
// # Tree
//
// A Container holds an ordered list of child elements and at most one
// Layout. The layout drives two independent passes over the container's
// subtree:
//
//   - lifecycle: OnPreLoad, OnLoad and OnLoadComplete, with LoadTree running
//     each phase over the whole subtree parent first;
//   - update: Update re-flows descendants before ancestors, calling each
//     layout handler exactly once.
//
// A tree can therefore be loaded once and updated many times (for example
// on every resize) without re-running load hooks.
//
// # Lifecycle states
//
// A layout moves through Unloaded, PreLoading, Loaded and LoadComplete.
// Out-of-order events fail with a LifecycleError. A second OnLoad is
// governed by the layout's DoubleLoadPolicy.
//
// Widgets are not safe for concurrent use. Construct and drive a tree from
// the goroutine the backend declares itself affine to.
package widget
