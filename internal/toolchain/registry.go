package toolchain

import (
	"context"
	"fmt"
	"sort"

	"github.com/plugforge/plugforge-cli/internal/pipeline"
)

// Factory creates a builder rooted at a workspace.
type Factory func(workspaceRoot string, verbose bool) (pipeline.Builder, error)

// Versioner is implemented by builders that can report the version of
// the underlying toolchain binary.
type Versioner interface {
	Version(ctx context.Context) (string, error)
}

// Registry of available toolchains
var toolchains = map[string]Factory{
	"cargo": func(workspaceRoot string, verbose bool) (pipeline.Builder, error) {
		return NewCargo(workspaceRoot, verbose)
	},
}

// Get returns a builder for the named toolchain.
func Get(name, workspaceRoot string, verbose bool) (pipeline.Builder, error) {
	factory, ok := toolchains[name]
	if !ok {
		return nil, fmt.Errorf("unknown toolchain: %s (available: %v)", name, List())
	}
	return factory(workspaceRoot, verbose)
}

// Register adds a new toolchain to the registry.
func Register(name string, factory Factory) {
	toolchains[name] = factory
}

// List returns all registered toolchain names.
func List() []string {
	names := make([]string, 0, len(toolchains))
	for name := range toolchains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
