package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies which pipeline stage an error came from.
type Stage string

const (
	StageBuild   Stage = "build"
	StageBundle  Stage = "bundle"
	StageInstall Stage = "install"
)

// ExitCode returns the process exit code for a failure in this stage.
func (s Stage) ExitCode() int {
	switch s {
	case StageBuild:
		return 1
	case StageBundle:
		return 2
	case StageInstall:
		return 3
	}
	return 1
}

// StageError is implemented by every error in the pipeline taxonomy.
type StageError interface {
	error
	Stage() Stage
}

// BuildFailed reports a non-zero exit (or missing output) from the toolchain.
type BuildFailed struct {
	Profile  string
	Target   string
	ExitCode int
	Err      error
}

func (e *BuildFailed) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build failed for %s [%s]: %v", e.Target, e.Profile, e.Err)
	}
	return fmt.Sprintf("build failed for %s [%s]: toolchain exited with code %d", e.Target, e.Profile, e.ExitCode)
}

func (e *BuildFailed) Stage() Stage { return StageBuild }

func (e *BuildFailed) Unwrap() error { return e.Err }

// MissingArtifact reports that the bundler's source file does not exist.
type MissingArtifact struct {
	Path string
}

func (e *MissingArtifact) Error() string {
	return fmt.Sprintf("bundle: artifact not found: %s", e.Path)
}

func (e *MissingArtifact) Stage() Stage { return StageBundle }

// BundleWriteFailed reports a failed directory creation or file copy
// while assembling the bundle.
type BundleWriteFailed struct {
	Path string
	Err  error
}

func (e *BundleWriteFailed) Error() string {
	return fmt.Sprintf("bundle: write failed at %s: %v", e.Path, e.Err)
}

func (e *BundleWriteFailed) Stage() Stage { return StageBundle }

func (e *BundleWriteFailed) Unwrap() error { return e.Err }

// InstallFailed reports an unwritable destination or an interrupted copy.
type InstallFailed struct {
	Dest string
	Err  error
}

func (e *InstallFailed) Error() string {
	return fmt.Sprintf("install: %s: %v", e.Dest, e.Err)
}

func (e *InstallFailed) Stage() Stage { return StageInstall }

func (e *InstallFailed) Unwrap() error { return e.Err }

// ExitCodeFor maps an error to the CLI exit code. Non-stage errors
// (flag misuse, config problems) map to 1.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var stageErr StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage().ExitCode()
	}
	return 1
}
