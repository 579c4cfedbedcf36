package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plugforge/plugforge-cli/internal/bundle"
	"github.com/plugforge/plugforge-cli/internal/installer"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
	"github.com/plugforge/plugforge-cli/internal/ui"
)

var (
	buildProfile     string
	buildTarget      string
	buildProduct     string
	buildInstallRoot string
	buildOutputDir   string
	buildVerbose     bool
	buildSkipInstall bool
	buildYes         bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build, bundle and install the plugin",
	Long: `Build compiles the plugin with the configured toolchain, wraps the
shared library in the platform bundle layout, and installs the bundle into
the plugin directory.

The stages run strictly in order; the first failure aborts the run. Each
stage has its own exit code so scripts can branch on what failed:
  1 - build failed
  2 - bundling failed
  3 - install failed

Examples:
  plugforge build --target demo-plugin --product-name Demo
  plugforge build --profile release-debug --target demo-plugin --product-name Demo
  plugforge build --skip-install --target demo-plugin --product-name Demo
  plugforge build --install-root ~/.vst --target demo-plugin --product-name Demo`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", "", `Build profile (default "release")`)
	buildCmd.Flags().StringVarP(&buildTarget, "target", "t", "", "Target package to build")
	buildCmd.Flags().StringVar(&buildProduct, "product-name", "", "Product name used for the bundle")
	buildCmd.Flags().StringVar(&buildInstallRoot, "install-root", "", "Plugin directory to install into (default: platform convention)")
	buildCmd.Flags().StringVarP(&buildOutputDir, "output-dir", "o", "", "Directory the bundle is assembled in")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Show detailed toolchain output")
	buildCmd.Flags().BoolVar(&buildSkipInstall, "skip-install", false, "Stop after bundling")
	buildCmd.Flags().BoolVarP(&buildYes, "yes", "y", false, "Overwrite an installed bundle without asking")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	cfg := ws.Resolver.Config()

	spec := pipeline.BuildSpec{
		Profile: ws.Resolver.ResolveProfile(buildProfile),
		Target:  ws.Resolver.ResolveTarget(buildTarget),
	}
	product := ws.Resolver.ResolveProductName(buildProduct)

	if spec.Target == "" {
		return fmt.Errorf("target package is required (use --target or set build.target in plugforge.yaml)")
	}
	if product == "" {
		return fmt.Errorf("product name is required (use --product-name or set bundle.product_name in plugforge.yaml)")
	}

	builder, err := newBuilder(cfg, ws.Root, buildVerbose)
	if err != nil {
		return err
	}

	bundler := bundle.New(resolveOutputDir(ws, buildOutputDir), buildVerbose,
		bundle.WithIdentifier(cfg.Bundle.Identifier),
		bundle.WithVersion(cfg.Project.Version),
	)

	var installTarget *pipeline.InstallTarget
	if !buildSkipInstall {
		root := ws.Resolver.ResolveInstallRoot(buildInstallRoot)
		if root == "" {
			root = platform.DefaultInstallRoot()
		}

		dest := filepath.Join(root, platform.BundleName(product))
		if !buildYes {
			if _, err := os.Stat(dest); err == nil {
				ok, err := ui.Confirm(fmt.Sprintf("Replace installed bundle %s", dest))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}
		}

		installTarget = &pipeline.InstallTarget{DestinationRoot: root}
	}

	fmt.Printf("🔨 Building %s [%s]...\n", spec.Target, spec.Profile)

	pipe := pipeline.New(builder, bundler, installer.New(buildVerbose, true))
	result, err := pipe.Run(ctx, pipeline.RunSpec{
		Build:       spec,
		ProductName: product,
		Install:     installTarget,
	})
	if err != nil {
		return err
	}

	fmt.Printf("📦 Bundle: %s\n", result.Bundle.RootPath)
	if result.Installed {
		fmt.Printf("✅ Installed into %s\n", installTarget.DestinationRoot)
	} else {
		fmt.Println("✅ Build completed (install skipped)")
	}

	return nil
}
