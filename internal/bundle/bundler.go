// Package bundle assembles a compiled plugin library into the platform
// plugin-bundle directory layout.
package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
	"github.com/plugforge/plugforge-cli/pkg/xos"
)

// Bundler writes plugin bundles under an output directory.
type Bundler struct {
	outDir     string
	identifier string
	version    string
	verbose    bool
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithIdentifier sets the reverse-DNS bundle identifier prefix.
func WithIdentifier(identifier string) Option {
	return func(b *Bundler) { b.identifier = identifier }
}

// WithVersion sets the bundle version string.
func WithVersion(version string) Option {
	return func(b *Bundler) { b.version = version }
}

// New creates a bundler that writes bundles under outDir.
func New(outDir string, verbose bool, opts ...Option) *Bundler {
	b := &Bundler{
		outDir:  outDir,
		version: "1.0.0",
		verbose: verbose,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bundle wraps the artifact into <outDir>/<Product>.bundle with the
// binary at Contents/<Product> next to its metadata files. Any previous
// bundle at the same path is replaced. The source artifact is verified
// before anything is created, so a missing artifact leaves no partial
// bundle behind.
func (b *Bundler) Bundle(ctx context.Context, spec pipeline.BundleSpec) (pipeline.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.Bundle{}, err
	}

	info, err := os.Stat(spec.Artifact.Path)
	if err != nil || !info.Mode().IsRegular() {
		return pipeline.Bundle{}, &pipeline.MissingArtifact{Path: spec.Artifact.Path}
	}

	rootPath := filepath.Join(b.outDir, platform.BundleName(spec.ProductName))
	contentsDir := filepath.Join(rootPath, "Contents")
	binaryPath := filepath.Join(contentsDir, spec.ProductName)

	// Replace any bundle from a previous run
	if err := os.RemoveAll(rootPath); err != nil {
		return pipeline.Bundle{}, &pipeline.BundleWriteFailed{Path: rootPath, Err: err}
	}

	if err := xos.CreateDir(contentsDir, 0755); err != nil {
		return pipeline.Bundle{}, &pipeline.BundleWriteFailed{Path: contentsDir, Err: err}
	}

	if err := copyBinary(spec.Artifact.Path, binaryPath); err != nil {
		return pipeline.Bundle{}, &pipeline.BundleWriteFailed{Path: binaryPath, Err: err}
	}

	plist, err := renderInfoPlist(plistData{
		Product:    spec.ProductName,
		Identifier: b.bundleIdentifier(spec.ProductName),
		Version:    b.version,
	})
	if err != nil {
		return pipeline.Bundle{}, &pipeline.BundleWriteFailed{Path: contentsDir, Err: err}
	}

	plistPath := filepath.Join(contentsDir, "Info.plist")
	if err := xos.WriteFile(plistPath, plist, 0644); err != nil {
		return pipeline.Bundle{}, &pipeline.BundleWriteFailed{Path: plistPath, Err: err}
	}

	pkgInfoPath := filepath.Join(contentsDir, "PkgInfo")
	if err := xos.WriteFile(pkgInfoPath, []byte(pkgInfo), 0644); err != nil {
		return pipeline.Bundle{}, &pipeline.BundleWriteFailed{Path: pkgInfoPath, Err: err}
	}

	if b.verbose {
		fmt.Printf("  Bundle assembled at %s\n", rootPath)
	}

	return pipeline.Bundle{
		RootPath:   rootPath,
		BinaryPath: binaryPath,
	}, nil
}

// bundleIdentifier derives the CFBundleIdentifier for a product.
func (b *Bundler) bundleIdentifier(productName string) string {
	if b.identifier != "" {
		return b.identifier
	}
	return "com.plugforge." + sanitizeIdentifier(productName)
}

// copyBinary places the artifact into the bundle with execute
// permissions, renaming it to the product name. The write is atomic so
// a crash mid-copy never leaves a truncated binary in the bundle.
func copyBinary(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	return xos.WriteReader(dst, in, 0755)
}
