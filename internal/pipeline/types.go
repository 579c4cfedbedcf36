// Package pipeline composes the build -> bundle -> install stages and
// defines the value types passed between them.
package pipeline

import "context"

// BuildSpec names what the toolchain should compile.
type BuildSpec struct {
	// Profile is the named build configuration (e.g. "release", "release-debug").
	Profile string
	// Target is the package identifier within the workspace.
	Target string
}

// Artifact is the compiled shared library produced by a Builder.
type Artifact struct {
	Path string
}

// BundleSpec drives the Bundler.
type BundleSpec struct {
	Artifact    Artifact
	ProductName string
}

// Bundle is a self-contained plugin bundle directory.
type Bundle struct {
	// RootPath is the bundle directory (e.g. .../Demo.bundle).
	RootPath string
	// BinaryPath is the binary inside the bundle.
	BinaryPath string
}

// InstallTarget is the platform plugin directory to install into.
type InstallTarget struct {
	DestinationRoot string
}

// Builder compiles a target with the external toolchain.
type Builder interface {
	Build(ctx context.Context, spec BuildSpec) (Artifact, error)
}

// Bundler wraps an artifact in the platform bundle layout.
type Bundler interface {
	Bundle(ctx context.Context, spec BundleSpec) (Bundle, error)
}

// Installer copies a bundle into the plugin directory.
type Installer interface {
	Install(ctx context.Context, bundle Bundle, target InstallTarget) error
}
