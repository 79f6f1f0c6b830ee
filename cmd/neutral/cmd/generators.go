package cmd

import (
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/go-drift/neutral/pkg/generator"
)

func init() {
	RegisterCommand(&Command{
		Name:  "generators",
		Short: "List generators and their capabilities",
		Long: `List every generator in the catalog.

For each generator, shows:
  - The handler API version it targets, and whether this core accepts it
  - The platform it renders to
  - Each capability it can resolve

The default generator is marked with '*'.`,
		Usage: "neutral generators",
		Run:   runGenerators,
	})
}

func runGenerators(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("generators takes no arguments")
	}
	if _, err := loadProject(); err != nil {
		return err
	}
	if err := ensureBackends(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Core API %s\n\n", generator.APIVersion)
	def := generator.Default()
	for _, id := range generator.Generators() {
		g, err := generator.Lookup(id)
		if err != nil {
			return err
		}
		mark := " "
		if g == def {
			mark = "*"
		}
		status := "ok"
		if err := generator.CheckAPIVersion(g.APIVersion()); err != nil {
			status = err.Error()
		}
		fmt.Fprintf(stdout, "%s %s  api=%s (%s)  platform=%s\n", mark, id, g.APIVersion(), status, platformString(g.Platform()))
		for _, c := range g.Capabilities() {
			fmt.Fprintf(stdout, "    %s\n", c)
		}
	}
	return nil
}

func platformString(p generator.Platform) string {
	switch {
	case p.Desktop && p.Mobile:
		return "desktop,mobile"
	case p.Mobile:
		return "mobile"
	case p.Desktop:
		return "desktop"
	default:
		return "none"
	}
}

// sameMajor reports whether two semantic versions share a major version.
func sameMajor(a, b string) bool {
	return semver.IsValid(a) && semver.Major(a) == semver.Major(b)
}
