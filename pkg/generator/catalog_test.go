package generator

import (
	"errors"
	"reflect"
	"testing"
)

func TestCatalogRegisterAndLookup(t *testing.T) {
	t.Cleanup(ResetForTest)

	a, b := New("a"), New("b")
	if err := RegisterGenerator(b); err != nil {
		t.Fatalf("RegisterGenerator(b): %v", err)
	}
	if err := RegisterGenerator(a); err != nil {
		t.Fatalf("RegisterGenerator(a): %v", err)
	}

	if got := Generators(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Generators() = %v, want [a b]", got)
	}
	if Default() != b {
		t.Error("first registered generator should become the default")
	}
	g, err := Lookup("a")
	if err != nil || g != a {
		t.Errorf("Lookup(a) = %v, %v", g, err)
	}
	if _, err := Lookup("missing"); !errors.Is(err, ErrGeneratorNotFound) {
		t.Errorf("Lookup(missing) err = %v, want ErrGeneratorNotFound", err)
	}

	SetDefault(a)
	if Default() != a {
		t.Error("SetDefault should replace the default")
	}
}

func TestCatalogRejectsDuplicates(t *testing.T) {
	t.Cleanup(ResetForTest)

	if err := RegisterGenerator(New("dup")); err != nil {
		t.Fatal(err)
	}
	if err := RegisterGenerator(New("dup")); !errors.Is(err, ErrDuplicateGenerator) {
		t.Errorf("err = %v, want ErrDuplicateGenerator", err)
	}
	if err := RegisterGenerator(nil); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("nil generator err = %v, want ErrNoGenerator", err)
	}
	if err := RegisterGenerator(New("")); !errors.Is(err, ErrNoGenerator) {
		t.Errorf("empty id err = %v, want ErrNoGenerator", err)
	}
}

func TestCheckAPIVersion(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{APIVersion, true},
		{"v1", true},
		{"v1.0.0", true},
		{"v1.1.5", true},
		{"v1.99.0", false},
		{"v2.0.0", false},
		{"v0.9.0", false},
		{"1.0.0", false},
		{"", false},
	}
	for _, tt := range tests {
		err := CheckAPIVersion(tt.version)
		if tt.ok && err != nil {
			t.Errorf("CheckAPIVersion(%q) = %v, want nil", tt.version, err)
		}
		if !tt.ok && !errors.Is(err, ErrIncompatibleAPI) {
			t.Errorf("CheckAPIVersion(%q) = %v, want ErrIncompatibleAPI", tt.version, err)
		}
	}
}

func TestCatalogRejectsIncompatibleBackend(t *testing.T) {
	t.Cleanup(ResetForTest)

	err := RegisterGenerator(New("future", WithAPIVersion("v2.0.0")))
	if !errors.Is(err, ErrIncompatibleAPI) {
		t.Fatalf("err = %v, want ErrIncompatibleAPI", err)
	}
	if len(Generators()) != 0 {
		t.Error("incompatible generator should not be registered")
	}
}

func TestGeneratorMetadata(t *testing.T) {
	g := New("mobile", WithPlatform(Platform{Mobile: true}), WithAPIVersion("v1.0.0"))
	if g.ID() != "mobile" {
		t.Errorf("ID() = %q", g.ID())
	}
	if p := g.Platform(); p.Desktop || !p.Mobile {
		t.Errorf("Platform() = %+v, want mobile only", p)
	}
	if g.APIVersion() != "v1.0.0" {
		t.Errorf("APIVersion() = %q", g.APIVersion())
	}
	if New("default").Platform() != (Platform{Desktop: true}) {
		t.Error("generators default to desktop")
	}
}
