package generator

import (
	"errors"
	"testing"

	nerrors "github.com/go-drift/neutral/pkg/errors"
)

type textHandler interface {
	Text() string
}

type otherHandler interface {
	Other()
}

type fakeText struct{ text string }

func (f *fakeText) Text() string { return f.text }

func TestCapabilityOfName(t *testing.T) {
	c := CapabilityOf[textHandler]()
	if got, want := c.Name(), "github.com/go-drift/neutral/pkg/generator.textHandler"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if c.IsZero() {
		t.Error("typed capability should not be zero")
	}
	if CapabilityOf[textHandler]() != c {
		t.Error("CapabilityOf should be stable for the same type")
	}
	if !(Capability{}).IsZero() {
		t.Error("zero Capability should report IsZero")
	}
	if NamedCapability("label").Type() != nil {
		t.Error("named capability should have no type")
	}
}

func TestResolveReturnsFreshHandler(t *testing.T) {
	g := New("test")
	calls := 0
	if err := Add(g, func() textHandler {
		calls++
		return &fakeText{text: "hello"}
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	a, err := Create[textHandler](g)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := Create[textHandler](g)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a == b {
		t.Error("each resolution should produce a distinct handler")
	}
	if calls != 2 {
		t.Errorf("factory called %d times, want 2", calls)
	}
	if a.Text() != "hello" {
		t.Errorf("Text() = %q, want hello", a.Text())
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	g := New("test")
	c := CapabilityOf[textHandler]()
	for _, text := range []string{"real", "mock", "override"} {
		text := text
		if err := g.Register(c, func() any { return &fakeText{text: text} }); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	h, err := g.Resolve(c)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := h.(textHandler).Text(); got != "override" {
		t.Errorf("resolved handler from %q factory, want override", got)
	}
	if n := len(g.Capabilities()); n != 1 {
		t.Errorf("Capabilities() has %d entries, want 1", n)
	}
}

func TestResolveUnregistered(t *testing.T) {
	gens := []*Generator{New("empty"), New("other")}
	Add(gens[1], func() otherHandler { return nil })

	for _, g := range gens {
		h, err := g.Resolve(CapabilityOf[textHandler]())
		if h != nil {
			t.Errorf("%s: Resolve returned handler %v for unregistered capability", g.ID(), h)
		}
		var notFound *nerrors.CapabilityNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("%s: error = %v, want CapabilityNotFoundError", g.ID(), err)
		}
		if notFound.Generator != g.ID() {
			t.Errorf("Generator = %q, want %q", notFound.Generator, g.ID())
		}
		var ne *nerrors.NeutralError
		if !errors.As(err, &ne) || ne.Kind != nerrors.KindResolve {
			t.Errorf("error should be a resolve NeutralError, got %v", err)
		}
	}
}

func TestResolveRejectsNilAndMismatchedHandlers(t *testing.T) {
	g := New("test")
	Add(g, func() textHandler { return nil })
	if _, err := Create[textHandler](g); !errors.Is(err, ErrNilHandler) {
		t.Errorf("nil interface handler: err = %v, want ErrNilHandler", err)
	}

	Add(g, func() textHandler { return (*fakeText)(nil) })
	if _, err := Create[textHandler](g); !errors.Is(err, ErrNilHandler) {
		t.Errorf("typed nil handler: err = %v, want ErrNilHandler", err)
	}

	g.Register(CapabilityOf[otherHandler](), func() any { return &fakeText{} })
	if _, err := g.Resolve(CapabilityOf[otherHandler]()); !errors.Is(err, ErrHandlerMismatch) {
		t.Errorf("mismatched handler: err = %v, want ErrHandlerMismatch", err)
	}
}

func TestNamedCapabilityUsesBindingType(t *testing.T) {
	g := New("test")
	typed := CapabilityOf[textHandler]()
	g.Register(typed, func() any { return &fakeText{text: "x"} })

	h, err := g.Resolve(NamedCapability(typed.Name()))
	if err != nil {
		t.Fatalf("Resolve by name: %v", err)
	}
	if _, ok := h.(textHandler); !ok {
		t.Errorf("handler %T should implement textHandler", h)
	}

	g.Register(NamedCapability("symbolic"), func() any { return 42 })
	if h, err := g.Resolve(NamedCapability("symbolic")); err != nil || h != 42 {
		t.Errorf("symbolic resolve = %v, %v", h, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	g := New("test")
	if err := g.Register(Capability{}, func() any { return 1 }); !errors.Is(err, ErrInvalidCapability) {
		t.Errorf("zero capability: err = %v", err)
	}
	if err := g.Register(NamedCapability("x"), nil); !errors.Is(err, ErrNilFactory) {
		t.Errorf("nil factory: err = %v", err)
	}
	if err := Add[textHandler](g, nil); !errors.Is(err, ErrNilFactory) {
		t.Errorf("nil typed factory: err = %v", err)
	}
	if g.Supports(NamedCapability("x")) {
		t.Error("failed registration should not bind")
	}
}

func TestResolveNilGenerator(t *testing.T) {
	var g *Generator
	if _, err := g.Resolve(NamedCapability("x")); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("err = %v, want ErrNoGenerator", err)
	}
}

func TestCapabilitiesSorted(t *testing.T) {
	g := New("test")
	for _, name := range []string{"c", "a", "b"} {
		g.Register(NamedCapability(name), func() any { return 1 })
	}
	caps := g.Capabilities()
	var names []string
	for _, c := range caps {
		names = append(names, c.Name())
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("Capabilities() = %v, want [a b c]", names)
	}
}

func TestFailedCallsDoNotReport(t *testing.T) {
	var reported []*nerrors.NeutralError
	prev := nerrors.SetHandler(captureHandler(func(e *nerrors.NeutralError) { reported = append(reported, e) }))
	t.Cleanup(func() { nerrors.SetHandler(prev) })

	g := New("test")
	_, err := g.Resolve(NamedCapability("missing"))
	var ne *nerrors.NeutralError
	if !errors.As(err, &ne) || ne.Capability != "missing" {
		t.Fatalf("err = %v, want NeutralError for capability missing", err)
	}
	_ = g.Register(NamedCapability("nil"), nil)
	_, _ = NewStack(nil).Pop()
	_, _ = Lookup("absent")

	if len(reported) != 0 {
		t.Errorf("returned errors were also reported: %v", reported)
	}
}

type captureHandler func(*nerrors.NeutralError)

func (h captureHandler) HandleError(e *nerrors.NeutralError) { h(e) }
func (h captureHandler) HandlePanic(*nerrors.PanicError)     {}
