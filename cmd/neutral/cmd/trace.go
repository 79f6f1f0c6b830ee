package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-drift/neutral/cmd/neutral/internal/fixture"
	nerrors "github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
	"github.com/go-drift/neutral/pkg/widget"
)

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Trace loading and updating a fixture tree",
		Long: `Build the widget tree described by a YAML fixture, load it and update
it, printing every handler call in order.

Phases:
  build    Widgets are created against the configured generator
  load     OnPreLoad, OnLoad and OnLoadComplete on every layout, top-down
  update   Update on the root layout, descendants first

Nodes may set 'generator: neutral.mock' to build their subtree against the
second recording backend.`,
		Usage: "neutral trace <fixture.yaml>",
		Run:   runTrace,
	})
}

func runTrace(args []string) (err error) {
	if len(args) != 1 {
		return fmt.Errorf("fixture path is required\n\nUsage: neutral trace <fixture.yaml>")
	}

	defer func() {
		if r := recover(); r != nil {
			nerrors.ReportPanic(&nerrors.PanicError{
				Op:         "cmd.trace",
				Value:      r,
				StackTrace: nerrors.CaptureStack(),
			})
			err = fmt.Errorf("trace aborted: backend panicked: %v", r)
		}
	}()

	cfg, err := loadProject()
	if err != nil {
		return err
	}
	g, err := selectGenerator(cfg)
	if err != nil {
		return err
	}
	node, err := fixture.Load(args[0])
	if err != nil {
		return err
	}

	recorder.Reset()
	ctx := generator.NewContext(context.Background(), g)
	tree, err := fixture.Build(ctx, node, widget.WithDoubleLoadPolicy(cfg.DoubleLoad))
	if err != nil {
		return err
	}
	root := tree.Root.Layout()
	if root == nil {
		return fmt.Errorf("fixture root %q needs a layout to be traced", tree.Root.Name())
	}

	fmt.Fprintf(stdout, "Generator: %s (policy %s)\n", g.ID(), cfg.DoubleLoad)
	if cfg.ModulePath != "" {
		fmt.Fprintf(stdout, "Project:   %s\n", cfg.ModulePath)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Tree:")
	printTree(tree.Root, 1)

	phases := []struct {
		name string
		run  func() error
	}{
		{"build", func() error { return nil }},
		{"load", root.LoadTree},
		{"update", root.Update},
	}
	for _, phase := range phases {
		if err := phase.run(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\n%s:\n", phase.name)
		for _, call := range recorder.Strings() {
			fmt.Fprintf(stdout, "  %s\n", call)
		}
		recorder.Reset()
	}
	return nil
}

func printTree(e widget.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	ctl := e.AsControl()
	line := fmt.Sprintf("%s%s [%s]", indent, ctl.Name(), e.Generator().ID())
	p, ok := e.(widget.Parent)
	if !ok {
		fmt.Fprintln(stdout, line)
		return
	}
	c := p.AsContainer()
	if l := c.Layout(); l != nil {
		line += fmt.Sprintf(" layout=%s", l.State())
	}
	fmt.Fprintln(stdout, line)
	for _, child := range c.Controls() {
		printTree(child, depth+1)
	}
}
