// Package toolchain invokes the external compiler toolchain and resolves
// the artifact paths it produces.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
)

// Cargo invokes the Rust toolchain to build plugin crates.
type Cargo struct {
	workspaceRoot string
	cargoPath     string
	verbose       bool
}

// NewCargo creates a cargo builder, locating the binary on PATH or in
// the default rustup location.
func NewCargo(workspaceRoot string, verbose bool) (*Cargo, error) {
	cargoPath, err := findCargo()
	if err != nil {
		return nil, fmt.Errorf("cargo not found: %w", err)
	}
	return NewCargoAt(cargoPath, workspaceRoot, verbose), nil
}

// NewCargoAt creates a cargo builder using an explicit binary path.
// Used when the config pins build.toolchain_path.
func NewCargoAt(cargoPath, workspaceRoot string, verbose bool) *Cargo {
	return &Cargo{
		workspaceRoot: workspaceRoot,
		cargoPath:     cargoPath,
		verbose:       verbose,
	}
}

// Name returns the toolchain name.
func (c *Cargo) Name() string { return "cargo" }

// Build runs `cargo build --profile <profile> -p <target>` and resolves
// the resulting shared library path. A non-zero exit aborts with
// BuildFailed carrying the toolchain's exit code; no retry is attempted
// since build failures are deterministic.
func (c *Cargo) Build(ctx context.Context, spec pipeline.BuildSpec) (pipeline.Artifact, error) {
	args := []string{"build", "--profile", spec.Profile, "-p", spec.Target}
	if c.verbose {
		args = append(args, "--verbose")
	}

	var stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, c.cargoPath, args...)
	cmd.Dir = c.workspaceRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		// Summarize the failure; the raw output already streamed above
		if msg := NewErrorTranslator().Translate(stderrBuf.String()); msg != "" {
			fmt.Fprintf(os.Stderr, "\n💡 %s\n", msg)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return pipeline.Artifact{}, &pipeline.BuildFailed{
				Profile:  spec.Profile,
				Target:   spec.Target,
				ExitCode: exitErr.ExitCode(),
			}
		}
		return pipeline.Artifact{}, &pipeline.BuildFailed{
			Profile:  spec.Profile,
			Target:   spec.Target,
			ExitCode: -1,
			Err:      err,
		}
	}

	artifact := pipeline.Artifact{Path: c.ArtifactPath(spec)}

	// The toolchain writes to a deterministic path; if it is absent or
	// empty after a zero exit, the build still failed.
	info, err := os.Stat(artifact.Path)
	if err != nil {
		return pipeline.Artifact{}, &pipeline.BuildFailed{
			Profile:  spec.Profile,
			Target:   spec.Target,
			Err:      fmt.Errorf("artifact not produced at %s: %w", artifact.Path, err),
		}
	}
	if info.Size() == 0 {
		return pipeline.Artifact{}, &pipeline.BuildFailed{
			Profile:  spec.Profile,
			Target:   spec.Target,
			Err:      fmt.Errorf("artifact is empty: %s", artifact.Path),
		}
	}

	return artifact, nil
}

// ArtifactPath returns the deterministic output path for a profile and target.
func (c *Cargo) ArtifactPath(spec pipeline.BuildSpec) string {
	return filepath.Join(
		c.workspaceRoot,
		"target",
		platform.ProfileDir(spec.Profile),
		platform.SharedLibraryName(spec.Target),
	)
}

// Version returns the cargo version string.
func (c *Cargo) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.cargoPath, "--version")

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}

// Clean runs `cargo clean` in the workspace.
func (c *Cargo) Clean(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.cargoPath, "clean")
	cmd.Dir = c.workspaceRoot
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cargo clean failed: %w", err)
	}

	return nil
}

// findCargo locates the cargo binary.
func findCargo() (string, error) {
	if path, err := exec.LookPath("cargo"); err == nil {
		return path, nil
	}

	// Fall back to the default rustup installation
	home, err := os.UserHomeDir()
	if err == nil {
		rustupCargo := filepath.Join(home, ".cargo", "bin", "cargo")
		if _, err := os.Stat(rustupCargo); err == nil {
			return rustupCargo, nil
		}
	}

	return "", fmt.Errorf("cargo not found in PATH or ~/.cargo/bin (install Rust via rustup)")
}
