package pipeline_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plugforge/plugforge-cli/internal/bundle"
	"github.com/plugforge/plugforge-cli/internal/installer"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
	"github.com/plugforge/plugforge-cli/internal/toolchain"
)

// TestPipeline_EndToEnd drives the real stages with a stub toolchain:
// a release-debug build of demo-plugin ends up installed as
// <installRoot>/Demo.bundle/Contents/Demo.
func TestPipeline_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub toolchain scripts are POSIX-only")
	}

	workspaceDir := t.TempDir()
	installRoot := filepath.Join(t.TempDir(), "plugins")

	libName := platform.SharedLibraryName("demo-plugin")
	outDir := filepath.Join("target", "release-debug")
	stub := filepath.Join(t.TempDir(), "cargo")
	script := fmt.Sprintf("#!/bin/sh\nmkdir -p %q && printf 'machine code' > %q\n",
		outDir, filepath.Join(outDir, libName))
	require.NoError(t, os.WriteFile(stub, []byte(script), 0755))

	pipe := pipeline.New(
		toolchain.NewCargoAt(stub, workspaceDir, false),
		bundle.New(filepath.Join(workspaceDir, "target", "bundle"), false),
		installer.New(false, false),
	)

	result, err := pipe.Run(context.Background(), pipeline.RunSpec{
		Build:       pipeline.BuildSpec{Profile: "release-debug", Target: "demo-plugin"},
		ProductName: "Demo",
		Install:     &pipeline.InstallTarget{DestinationRoot: installRoot},
	})
	require.NoError(t, err)
	require.Equal(t, 0, pipeline.ExitCodeFor(err))
	require.True(t, result.Installed)

	installedBinary := filepath.Join(installRoot, "Demo.bundle", "Contents", "Demo")
	data, err := os.ReadFile(installedBinary)
	require.NoError(t, err)
	require.Equal(t, "machine code", string(data))

	for _, meta := range []string{"Info.plist", "PkgInfo"} {
		_, err := os.Stat(filepath.Join(installRoot, "Demo.bundle", "Contents", meta))
		require.NoError(t, err)
	}
}
