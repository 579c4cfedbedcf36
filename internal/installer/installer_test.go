package installer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plugforge/plugforge-cli/internal/pipeline"
)

// makeBundle lays out a minimal Demo.bundle under dir.
func makeBundle(t *testing.T, dir string) pipeline.Bundle {
	t.Helper()
	root := filepath.Join(dir, "Demo.bundle")
	contents := filepath.Join(root, "Contents")
	require.NoError(t, os.MkdirAll(contents, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "Demo"), []byte("machine code"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "Info.plist"), []byte("<plist/>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "PkgInfo"), []byte("BNDL????"), 0644))
	return pipeline.Bundle{
		RootPath:   root,
		BinaryPath: filepath.Join(contents, "Demo"),
	}
}

// snapshot maps relative paths to file contents under root.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestInstall_CopiesBundleIntoDestinationRoot(t *testing.T) {
	tmp := t.TempDir()
	bundle := makeBundle(t, tmp)
	installRoot := filepath.Join(tmp, "plugins")

	inst := New(false, false)
	err := inst.Install(context.Background(), bundle, pipeline.InstallTarget{DestinationRoot: installRoot})
	require.NoError(t, err)

	installed := filepath.Join(installRoot, "Demo.bundle")
	require.Equal(t, snapshot(t, bundle.RootPath), snapshot(t, installed))

	binary, err := os.ReadFile(filepath.Join(installed, "Contents", "Demo"))
	require.NoError(t, err)
	require.Equal(t, "machine code", string(binary))
}

func TestInstall_Twice_IsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	bundle := makeBundle(t, tmp)
	installRoot := filepath.Join(tmp, "plugins")
	target := pipeline.InstallTarget{DestinationRoot: installRoot}

	inst := New(false, false)
	require.NoError(t, inst.Install(context.Background(), bundle, target))
	first := snapshot(t, filepath.Join(installRoot, "Demo.bundle"))

	require.NoError(t, inst.Install(context.Background(), bundle, target))
	second := snapshot(t, filepath.Join(installRoot, "Demo.bundle"))

	require.Equal(t, first, second)
}

func TestInstall_ReplacesStaleFilesFromOlderVersion(t *testing.T) {
	tmp := t.TempDir()
	bundle := makeBundle(t, tmp)
	installRoot := filepath.Join(tmp, "plugins")
	target := pipeline.InstallTarget{DestinationRoot: installRoot}

	inst := New(false, false)
	require.NoError(t, inst.Install(context.Background(), bundle, target))

	// Simulate a leftover from a previous plugin version
	stale := filepath.Join(installRoot, "Demo.bundle", "Contents", "old-resource.dat")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	require.NoError(t, inst.Install(context.Background(), bundle, target))

	_, err := os.Stat(stale)
	require.True(t, os.IsNotExist(err))

	var names []string
	for rel := range snapshot(t, filepath.Join(installRoot, "Demo.bundle")) {
		names = append(names, rel)
	}
	sort.Strings(names)
	require.Equal(t, []string{
		filepath.Join("Contents", "Demo"),
		filepath.Join("Contents", "Info.plist"),
		filepath.Join("Contents", "PkgInfo"),
	}, names)
}

func TestInstall_ReadOnlyDestination_FailsAndLeavesBundleUntouched(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission checks are not enforced")
	}

	tmp := t.TempDir()
	bundle := makeBundle(t, tmp)
	before := snapshot(t, bundle.RootPath)

	installRoot := filepath.Join(tmp, "plugins")
	require.NoError(t, os.MkdirAll(installRoot, 0555))
	t.Cleanup(func() { _ = os.Chmod(installRoot, 0755) })

	inst := New(false, false)
	err := inst.Install(context.Background(), bundle, pipeline.InstallTarget{DestinationRoot: installRoot})

	var installErr *pipeline.InstallFailed
	require.ErrorAs(t, err, &installErr)

	// Build-output bundle is untouched
	require.Equal(t, before, snapshot(t, bundle.RootPath))
}

func TestInstall_MissingBundle_Fails(t *testing.T) {
	tmp := t.TempDir()

	inst := New(false, false)
	err := inst.Install(context.Background(),
		pipeline.Bundle{RootPath: filepath.Join(tmp, "Nope.bundle")},
		pipeline.InstallTarget{DestinationRoot: filepath.Join(tmp, "plugins")},
	)

	var installErr *pipeline.InstallFailed
	require.ErrorAs(t, err, &installErr)
}

func TestInstall_EmptyDestinationRoot_Fails(t *testing.T) {
	tmp := t.TempDir()
	bundle := makeBundle(t, tmp)

	inst := New(false, false)
	err := inst.Install(context.Background(), bundle, pipeline.InstallTarget{})

	var installErr *pipeline.InstallFailed
	require.ErrorAs(t, err, &installErr)
}
