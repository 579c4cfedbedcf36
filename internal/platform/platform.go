// Package platform holds the OS-specific conventions: where plugins are
// installed and how the toolchain names shared libraries.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultInstallRoot returns the conventional user plugin directory for
// the current OS.
func DefaultInstallRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Audio", "Plug-Ins", "VST")
	case "windows":
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		return filepath.Join(programFiles, "Steinberg", "VstPlugins")
	default:
		return filepath.Join(home, ".vst")
	}
}

// ProfileDir maps a build profile to its output directory name under
// target/. The dev profile is special-cased by the toolchain.
func ProfileDir(profile string) string {
	switch profile {
	case "dev", "test":
		return "debug"
	case "bench":
		return "release"
	default:
		return profile
	}
}

// SharedLibraryName returns the file name the toolchain gives the
// compiled library for a target package. Package identifiers use
// hyphens; library names use underscores.
func SharedLibraryName(target string) string {
	crate := strings.ReplaceAll(target, "-", "_")
	switch runtime.GOOS {
	case "darwin":
		return "lib" + crate + ".dylib"
	case "windows":
		return crate + ".dll"
	default:
		return "lib" + crate + ".so"
	}
}

// BundleName returns the directory name of the plugin bundle for a
// product.
func BundleName(productName string) string {
	return productName + ".bundle"
}
