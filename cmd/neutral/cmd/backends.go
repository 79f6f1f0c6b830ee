package cmd

import (
	"fmt"
	"slices"

	"github.com/go-drift/neutral/cmd/neutral/internal/config"
	"github.com/go-drift/neutral/pkg/backends/testbackend"
	nerrors "github.com/go-drift/neutral/pkg/errors"
	"github.com/go-drift/neutral/pkg/generator"
)

// MockGenerator is a second recording backend fixtures can switch to.
const MockGenerator = "neutral.mock"

// recorder is shared by every backend the CLI registers so a trace shows
// calls from all of them in order.
var recorder = &testbackend.Recorder{}

// ensureBackends adds the recording backends to the catalog once.
func ensureBackends() error {
	have := generator.Generators()
	for _, id := range []string{testbackend.ID, MockGenerator} {
		if slices.Contains(have, id) {
			continue
		}
		g := generator.New(id)
		if err := testbackend.AddTo(g, recorder); err != nil {
			return err
		}
		if err := generator.RegisterGenerator(g); err != nil {
			return err
		}
	}
	return nil
}

// loadProject resolves configuration and applies its error settings.
func loadProject() (*config.Resolved, error) {
	dir := projectDir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			dir = "."
		} else {
			dir = root
		}
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	nerrors.SetHandler(&nerrors.LogHandler{Verbose: cfg.Verbose})
	return cfg, nil
}

// selectGenerator returns the configured default generator, checking that it
// serves the API major the project targets.
func selectGenerator(cfg *config.Resolved) (*generator.Generator, error) {
	if err := ensureBackends(); err != nil {
		return nil, err
	}
	g, err := generator.Lookup(cfg.DefaultGenerator)
	if err != nil {
		return nil, err
	}
	if !sameMajor(g.APIVersion(), cfg.API) {
		return nil, fmt.Errorf("generator %s targets API %s, project requires %s", g.ID(), g.APIVersion(), cfg.API)
	}
	generator.SetDefault(g)
	return g, nil
}
