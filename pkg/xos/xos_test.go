package xos

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireMode(t *testing.T, path string, perm os.FileMode) {
	t.Helper()
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, perm, info.Mode().Perm())
}

func TestWriteReader_WritesContentWithMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Contents", "Demo")
	require.NoError(t, CreateDir(filepath.Dir(path), 0755))

	require.NoError(t, WriteReader(path, strings.NewReader("machine code"), 0755))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "machine code", string(data))
	requireMode(t, path, 0755)
}

func TestWriteReader_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Demo")
	require.NoError(t, os.WriteFile(path, []byte("old binary"), 0644))

	require.NoError(t, WriteReader(path, strings.NewReader("new binary"), 0755))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new binary", string(data))
}

func TestCopyFile_CopiesContentWithMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))

	require.NoError(t, CopyFile(src, dst, 0755))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(data))
	requireMode(t, dst, 0755)
}

func TestCopyFile_MissingSource_Fails(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "absent"), filepath.Join(dir, "dst"), 0644)
	require.Error(t, err)
}
