package platform

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedLibraryName_HyphensBecomeUnderscores(t *testing.T) {
	name := SharedLibraryName("demo-plugin")

	require.Contains(t, name, "demo_plugin")
	require.NotContains(t, name, "-")

	switch runtime.GOOS {
	case "darwin":
		require.Equal(t, "libdemo_plugin.dylib", name)
	case "windows":
		require.Equal(t, "demo_plugin.dll", name)
	default:
		require.Equal(t, "libdemo_plugin.so", name)
	}
}

func TestProfileDir_SpecialProfiles(t *testing.T) {
	require.Equal(t, "debug", ProfileDir("dev"))
	require.Equal(t, "debug", ProfileDir("test"))
	require.Equal(t, "release", ProfileDir("bench"))
	require.Equal(t, "release", ProfileDir("release"))
	require.Equal(t, "release-debug", ProfileDir("release-debug"))
}

func TestDefaultInstallRoot_IsAbsoluteAndPlatformConventional(t *testing.T) {
	root := DefaultInstallRoot()
	require.NotEmpty(t, root)

	switch runtime.GOOS {
	case "darwin":
		require.True(t, strings.HasSuffix(root, "Library/Audio/Plug-Ins/VST"))
	case "windows":
		require.Contains(t, root, "VstPlugins")
	default:
		require.True(t, strings.HasSuffix(root, ".vst"))
	}
}

func TestBundleName(t *testing.T) {
	require.Equal(t, "Demo.bundle", BundleName("Demo"))
}
