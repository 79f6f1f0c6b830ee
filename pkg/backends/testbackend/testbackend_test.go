package testbackend

import (
	"reflect"
	"testing"

	"github.com/go-drift/neutral/pkg/generator"
	"github.com/go-drift/neutral/pkg/widget"
)

func TestNewSupportsEveryWidgetCapability(t *testing.T) {
	g, _ := New()
	caps := []generator.Capability{
		widget.ControlCapability,
		widget.LabelCapability,
		widget.ContainerCapability,
		widget.LayoutCapability,
		widget.PositionalLayoutCapability,
	}
	for _, c := range caps {
		if !g.Supports(c) {
			t.Errorf("backend does not support %s", c)
		}
	}
	if g.ID() != ID {
		t.Errorf("ID() = %q, want %q", g.ID(), ID)
	}
}

func TestRecorderNamesHandlersAfterWidgets(t *testing.T) {
	g, rec := New()
	root, err := widget.NewContainer(g, widget.ContainerCapability)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := widget.NewLayout(g, widget.LayoutCapability, root); err != nil {
		t.Fatal(err)
	}
	root.SetName("form")
	root.Invalidate()
	if err := root.Layout().Update(); err != nil {
		t.Fatal(err)
	}

	want := []string{"container.setLayout", "layout.attached", "form.invalidate", "form.update"}
	if got := rec.Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if got := rec.Handlers("update"); !reflect.DeepEqual(got, []string{"form"}) {
		t.Errorf("Handlers(update) = %v", got)
	}

	rec.Reset()
	if len(rec.Calls()) != 0 {
		t.Error("Reset should discard calls")
	}
}

func TestCallString(t *testing.T) {
	tests := []struct {
		call Call
		want string
	}{
		{Call{Handler: "a", Method: "update"}, "a.update"},
		{Call{Handler: "c", Method: "add", Args: []any{"x", 1, 2}}, "c.add(x,1,2)"},
	}
	for _, tt := range tests {
		if got := tt.call.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRegister(t *testing.T) {
	t.Cleanup(generator.ResetForTest)
	g, _, err := Register()
	if err != nil {
		t.Fatal(err)
	}
	if generator.Default() != g {
		t.Error("first registered backend should become the default")
	}
	if _, _, err := Register(); err == nil {
		t.Error("registering twice should fail")
	}
}
