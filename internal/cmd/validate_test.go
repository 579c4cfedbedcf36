package cmd

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plugforge/plugforge-cli/internal/config"
)

func TestToolchainVersion_ReportsPinnedToolchain(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub toolchain scripts are POSIX-only")
	}

	stub := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\necho 'cargo 1.80.0 (stub)'\n"), 0755))

	cfg := config.Default()
	cfg.Project.Name = "demo"
	cfg.Build.ToolchainPath = stub

	version, err := toolchainVersion(context.Background(), cfg, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "cargo 1.80.0 (stub)", version)
}

func TestToolchainVersion_UnknownToolchain_Fails(t *testing.T) {
	cfg := config.Default()
	cfg.Project.Name = "demo"
	cfg.Build.Toolchain = "zig"

	_, err := toolchainVersion(context.Background(), cfg, t.TempDir())
	require.Error(t, err)
}

func TestValidateSemantics_UnknownToolchain_Warns(t *testing.T) {
	cfg := config.Default()
	cfg.Project.Name = "demo"
	cfg.Build.Toolchain = "zig"

	err := validateSemantics(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not registered")
}

func TestValidateSemantics_MissingToolchainPath_Warns(t *testing.T) {
	cfg := config.Default()
	cfg.Project.Name = "demo"
	cfg.Build.ToolchainPath = filepath.Join(t.TempDir(), "absent")

	err := validateSemantics(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "toolchain_path")
}
