package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plugforge/plugforge-cli/internal/config"
)

func TestWriteStarterConfig_CreatesLoadableDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := writeStarterConfig(dir, "octasine", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, config.ConfigFileName), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "octasine", cfg.Project.Name)
	require.Equal(t, "cargo", cfg.Build.Toolchain)
	require.Equal(t, "release", cfg.Build.Profile)
	require.Equal(t, "target/bundle", cfg.Bundle.OutputDir)
}

func TestWriteStarterConfig_NameDefaultsToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "octasine")
	require.NoError(t, os.MkdirAll(dir, 0755))

	path, err := writeStarterConfig(dir, "", false)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "octasine", cfg.Project.Name)
}

func TestWriteStarterConfig_ExistingConfig_RequiresForce(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(existing, []byte("project:\n  name: keepme\n"), 0644))

	_, err := writeStarterConfig(dir, "octasine", false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	// The refused write must leave the original untouched
	cfg, err := config.Load(existing)
	require.NoError(t, err)
	require.Equal(t, "keepme", cfg.Project.Name)

	_, err = writeStarterConfig(dir, "octasine", true)
	require.NoError(t, err)
}
