package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	nerrors "github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
)

// run executes the CLI against a scratch project and returns its output.
func run(t *testing.T, project string, args ...string) (string, error) {
	t.Helper()
	generator.ResetForTest()
	var buf bytes.Buffer
	prevOut, prevErr, prevDir := stdout, stderr, projectDir
	stdout, stderr = &buf, io.Discard
	t.Cleanup(func() {
		stdout, stderr, projectDir = prevOut, prevErr, prevDir
		generator.ResetForTest()
		nerrors.SetHandler(nil)
	})
	err := execute(append([]string{"--project", project}, args...))
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("output %q should contain version %s", out, Version)
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := run(t, t.TempDir(), "paint"); err == nil {
		t.Error("unknown command should fail")
	}
}

func TestGenerators(t *testing.T) {
	out, err := run(t, t.TempDir(), "generators")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"* neutral.test", "  neutral.mock", "widget.LabelHandler", "api=" + generator.APIVersion + " (ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

const traceFixture = `
name: root
layout: table
children:
  - name: a
    layout: table
    children:
      - {name: x, layout: table}
  - name: side
    generator: neutral.mock
    layout: positional
    children:
      - {name: dot, kind: label, x: 1, y: 2}
`

func TestTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "form.yaml", traceFixture)

	out, err := run(t, dir, "trace", path)
	if err != nil {
		t.Fatal(err)
	}

	section := func(name string) []string {
		_, rest, ok := strings.Cut(out, "\n"+name+":\n")
		if !ok {
			t.Fatalf("no %s section in:\n%s", name, out)
		}
		block, _, _ := strings.Cut(rest, "\n\n")
		var lines []string
		for _, l := range strings.Split(strings.TrimSpace(block), "\n") {
			lines = append(lines, strings.TrimSpace(l))
		}
		return lines
	}

	if !strings.Contains(out, "side [neutral.mock]") {
		t.Errorf("tree should show the mock subtree:\n%s", out)
	}
	update := section("update")
	want := []string{"x.update", "a.update", "side.update", "root.update"}
	if strings.Join(update, " ") != strings.Join(want, " ") {
		t.Errorf("update = %v, want %v", update, want)
	}
	load := section("load")
	if len(load) != 12 || load[0] != "root.preload" || load[len(load)-1] != "side.loadcomplete" {
		t.Errorf("load = %v", load)
	}
}

func TestTraceRequiresRootLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bare.yaml", "name: root\n")
	if _, err := run(t, dir, "trace", path); err == nil || !strings.Contains(err.Error(), "needs a layout") {
		t.Errorf("err = %v, want missing-layout error", err)
	}
}

func TestTraceHonorsConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "neutral.yaml", "generator:\n  default: neutral.mock\n")
	path := writeFile(t, dir, "form.yaml", "name: root\nlayout: table\n")

	out, err := run(t, dir, "trace", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Generator: neutral.mock") {
		t.Errorf("configured generator should be used:\n%s", out)
	}

	writeFile(t, dir, "neutral.yaml", "generator:\n  default: missing\n")
	if _, err := run(t, dir, "trace", path); err == nil {
		t.Error("unknown configured generator should fail")
	}
}

type recordingHandler struct {
	errors []*nerrors.NeutralError
}

func (h *recordingHandler) HandleError(e *nerrors.NeutralError) { h.errors = append(h.errors, e) }
func (h *recordingHandler) HandlePanic(*nerrors.PanicError)     {}

func TestReportErrorAtBoundary(t *testing.T) {
	h := &recordingHandler{}
	prevHandler := nerrors.SetHandler(h)
	var plain bytes.Buffer
	prevErr := stderr
	stderr = &plain
	t.Cleanup(func() {
		nerrors.SetHandler(prevHandler)
		stderr = prevErr
	})

	structured := nerrors.Raise("config.Resolve", nerrors.KindConfig, errors.New("bad api"))
	reportError(structured)
	reportError(errors.New("fixture path is required"))

	if len(h.errors) != 1 || h.errors[0] != structured {
		t.Errorf("handler got %v, want the structured error once", h.errors)
	}
	if got := plain.String(); got != "Error: fixture path is required\n" {
		t.Errorf("stderr = %q", got)
	}
}
