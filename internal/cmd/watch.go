package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/plugforge/plugforge-cli/internal/bundle"
	"github.com/plugforge/plugforge-cli/internal/installer"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
	"github.com/plugforge/plugforge-cli/internal/watch"
)

var (
	watchProfile     string
	watchTarget      string
	watchProduct     string
	watchInstallRoot string
	watchVerbose     bool
	watchSkipInstall bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild and reinstall on source changes",
	Long: `Watch runs the build pipeline once, then watches the crate sources
(*.rs, Cargo.toml, plugforge.yaml) and re-runs it on every change. A failed
run is reported and watching continues. Installed bundles are replaced
without prompting.

Press Ctrl-C to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchProfile, "profile", "p", "", `Build profile (default "release")`)
	watchCmd.Flags().StringVarP(&watchTarget, "target", "t", "", "Target package to build")
	watchCmd.Flags().StringVar(&watchProduct, "product-name", "", "Product name used for the bundle")
	watchCmd.Flags().StringVar(&watchInstallRoot, "install-root", "", "Plugin directory to install into (default: platform convention)")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Show detailed toolchain output")
	watchCmd.Flags().BoolVar(&watchSkipInstall, "skip-install", false, "Stop each run after bundling")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	cfg := ws.Resolver.Config()

	spec := pipeline.BuildSpec{
		Profile: ws.Resolver.ResolveProfile(watchProfile),
		Target:  ws.Resolver.ResolveTarget(watchTarget),
	}
	product := ws.Resolver.ResolveProductName(watchProduct)

	if spec.Target == "" {
		return fmt.Errorf("target package is required (use --target or set build.target in plugforge.yaml)")
	}
	if product == "" {
		return fmt.Errorf("product name is required (use --product-name or set bundle.product_name in plugforge.yaml)")
	}

	builder, err := newBuilder(cfg, ws.Root, watchVerbose)
	if err != nil {
		return err
	}

	bundler := bundle.New(resolveOutputDir(ws, ""), watchVerbose,
		bundle.WithIdentifier(cfg.Bundle.Identifier),
		bundle.WithVersion(cfg.Project.Version),
	)

	var installTarget *pipeline.InstallTarget
	if !watchSkipInstall {
		root := ws.Resolver.ResolveInstallRoot(watchInstallRoot)
		if root == "" {
			root = platform.DefaultInstallRoot()
		}
		installTarget = &pipeline.InstallTarget{DestinationRoot: root}
	}

	pipe := pipeline.New(builder, bundler, installer.New(watchVerbose, true))
	runSpec := pipeline.RunSpec{
		Build:       spec,
		ProductName: product,
		Install:     installTarget,
	}

	runOnce := func() {
		fmt.Printf("🔨 Building %s [%s]...\n", spec.Target, spec.Profile)
		result, err := pipe.Run(ctx, runSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return
		}
		if result.Installed {
			fmt.Printf("✅ Installed into %s\n", installTarget.DestinationRoot)
		} else {
			fmt.Printf("📦 Bundle: %s\n", result.Bundle.RootPath)
		}
	}

	runOnce()

	watcher, err := watch.New(watch.DefaultConfig(ws.Root))
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("👀 Watching %s for changes (Ctrl-C to stop)\n", ws.Root)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil
		case event := <-watcher.Events():
			fmt.Printf("♻️  %s changed\n", relPath(ws.Root, event.Path))
			runOnce()
		case err := <-watcher.Errors():
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// relPath shortens a path for display.
func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
