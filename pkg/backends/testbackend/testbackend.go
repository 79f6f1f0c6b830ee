// Package testbackend is an in-process backend whose handlers record every
// call made to them. It registers a handler for each capability in package
// widget and is used by tests and by the neutral CLI's trace command.
//
//	g, rec := testbackend.New()
//	root, _ := widget.NewContainer(g, widget.ContainerCapability)
//	...
//	fmt.Println(rec.Strings())
package testbackend

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-drift/neutral/pkg/generator"
	"github.com/go-drift/neutral/pkg/widget"
)

// ID is the identifier the backend registers under.
const ID = "neutral.test"

// Call is one recorded handler invocation.
type Call struct {
	// Handler is the name of the widget the handler backs.
	Handler string
	// Method is the handler method that was called.
	Method string
	// Args holds the call's arguments, if any.
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Handler + "." + c.Method
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return fmt.Sprintf("%s.%s(%s)", c.Handler, c.Method, strings.Join(args, ","))
}

// Recorder collects calls in order.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(handler, method string, args ...any) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Handler: handler, Method: method, Args: args})
	r.mu.Unlock()
}

// Calls returns a copy of all recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Strings returns the recorded calls formatted with Call.String.
func (r *Recorder) Strings() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Handlers returns, in order, the names of handlers that received method.
func (r *Recorder) Handlers(method string) []string {
	var out []string
	for _, c := range r.Calls() {
		if c.Method == method {
			out = append(out, c.Handler)
		}
	}
	return out
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// New returns a generator populated with recording handlers, and its recorder.
func New(opts ...generator.Option) (*generator.Generator, *Recorder) {
	g := generator.New(ID, opts...)
	rec := &Recorder{}
	// Registering typed factories on a fresh generator cannot fail.
	_ = AddTo(g, rec)
	return g, rec
}

// AddTo registers recording handlers for every widget capability on g.
// Existing bindings are replaced, so a real backend can be partially mocked.
func AddTo(g *generator.Generator, rec *Recorder) error {
	regs := []error{
		generator.Add(g, func() widget.ControlHandler { return &controlHandler{base: base{rec: rec, kind: "control"}} }),
		generator.Add(g, func() widget.LabelHandler { return &labelHandler{controlHandler{base: base{rec: rec, kind: "label"}}, ""} }),
		generator.Add(g, func() widget.ContainerHandler { return &containerHandler{controlHandler{base: base{rec: rec, kind: "container"}}} }),
		generator.Add(g, func() widget.LayoutHandler { return &layoutHandler{base: base{rec: rec, kind: "layout"}} }),
		generator.Add(g, func() widget.PositionalLayoutHandler {
			return &positionalHandler{layoutHandler: layoutHandler{base: base{rec: rec, kind: "positional"}}}
		}),
	}
	for _, err := range regs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Register creates the backend and adds it to the generator catalog.
func Register() (*generator.Generator, *Recorder, error) {
	g, rec := New()
	if err := generator.RegisterGenerator(g); err != nil {
		return nil, nil, err
	}
	return g, rec, nil
}
