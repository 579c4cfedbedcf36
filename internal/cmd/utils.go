package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/plugforge/plugforge-cli/internal/config"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/toolchain"
)

// workspace bundles the resolved workspace root and configuration.
type workspace struct {
	Root     string
	Resolver *config.Resolver
}

// loadWorkspace locates the workspace root and loads plugforge.yaml if
// present; otherwise the built-in defaults apply.
func loadWorkspace() (*workspace, error) {
	root, err := findWorkspaceRoot()
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	configPath := filepath.Join(root, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	return &workspace{
		Root:     root,
		Resolver: config.NewResolver(cfg),
	}, nil
}

// findWorkspaceRoot walks up from the current directory looking for
// plugforge.yaml or Cargo.toml.
func findWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "Cargo.toml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("not a plugin workspace (no %s or Cargo.toml found in current directory or any parent)", config.ConfigFileName)
}

// newBuilder creates the configured toolchain builder for a workspace.
func newBuilder(cfg *config.Config, workspaceRoot string, verbose bool) (pipeline.Builder, error) {
	if cfg.Build.ToolchainPath != "" && cfg.Build.Toolchain == "cargo" {
		return toolchain.NewCargoAt(cfg.Build.ToolchainPath, workspaceRoot, verbose), nil
	}
	return toolchain.Get(cfg.Build.Toolchain, workspaceRoot, verbose)
}

// resolveOutputDir makes the bundle output directory absolute relative
// to the workspace root.
func resolveOutputDir(ws *workspace, cliOutputDir string) string {
	outDir := ws.Resolver.ResolveOutputDir(cliOutputDir)
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(ws.Root, outDir)
	}
	return outDir
}
