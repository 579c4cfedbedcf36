// Package installer copies a plugin bundle into the platform plugin
// directory with overwrite semantics.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/pkg/xos"
)

// Installer installs bundles into a destination root.
type Installer struct {
	verbose  bool
	progress bool
}

// New creates a new installer. When progress is true a progress bar is
// rendered on stderr during the copy.
func New(verbose, progress bool) *Installer {
	return &Installer{
		verbose:  verbose,
		progress: progress,
	}
}

// Install copies bundle.RootPath recursively into target.DestinationRoot,
// replacing any existing bundle of the same name. Repeated installs of
// the same bundle converge to the same destination state. A failed or
// interrupted copy is not rolled back; re-running install repairs it.
func (i *Installer) Install(ctx context.Context, bundle pipeline.Bundle, target pipeline.InstallTarget) error {
	if target.DestinationRoot == "" {
		return &pipeline.InstallFailed{Dest: "", Err: fmt.Errorf("no destination root configured")}
	}

	if _, err := os.Stat(bundle.RootPath); err != nil {
		return &pipeline.InstallFailed{Dest: bundle.RootPath, Err: fmt.Errorf("bundle not found: %w", err)}
	}

	dest := filepath.Join(target.DestinationRoot, filepath.Base(bundle.RootPath))

	totalBytes, err := treeSize(bundle.RootPath)
	if err != nil {
		return &pipeline.InstallFailed{Dest: dest, Err: err}
	}

	if err := os.MkdirAll(target.DestinationRoot, 0755); err != nil {
		return &pipeline.InstallFailed{Dest: target.DestinationRoot, Err: err}
	}

	// Overwrite semantics: drop the previous bundle so stale files from
	// an older version cannot survive the upgrade.
	if err := os.RemoveAll(dest); err != nil {
		return &pipeline.InstallFailed{Dest: dest, Err: err}
	}

	bar := i.newProgressBar(totalBytes, filepath.Base(dest))

	if err := copyTree(ctx, bundle.RootPath, dest, bar); err != nil {
		return &pipeline.InstallFailed{Dest: dest, Err: err}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	if i.verbose {
		fmt.Printf("  Installed %s\n", dest)
	}

	return nil
}

// newProgressBar creates the install progress bar, or nil when progress
// output is disabled.
func (i *Installer) newProgressBar(totalBytes int64, name string) *progressbar.ProgressBar {
	if !i.progress {
		return nil
	}
	return progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetDescription(fmt.Sprintf("Installing %s", name)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*1000000), // 65ms
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionClearOnFinish(),
	)
}

// treeSize sums the file sizes under root.
func treeSize(root string) (int64, error) {
	var total int64
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// copyTree copies src into dst recursively, preserving file modes.
func copyTree(ctx context.Context, src, dst string, bar *progressbar.ProgressBar) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		targetPath := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(targetPath, info.Mode().Perm())
		}
		if !info.Mode().IsRegular() {
			// Bundles contain only directories and regular files
			return fmt.Errorf("unsupported file type: %s", path)
		}

		return copyFile(path, targetPath, info.Mode().Perm(), bar)
	})
}

// copyFile copies a single file, feeding the progress bar as it goes.
// Without a bar the copy goes through the atomic write path instead.
func copyFile(src, dst string, perm os.FileMode, bar *progressbar.ProgressBar) error {
	if bar == nil {
		return xos.CopyFile(src, dst, perm)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(io.MultiWriter(out, bar), in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
