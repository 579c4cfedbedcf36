package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plugforge/plugforge-cli/internal/bundle"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
)

var (
	bundleArtifact  string
	bundleProduct   string
	bundleProfile   string
	bundleTarget    string
	bundleOutputDir string
	bundleVerbose   bool
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Bundle an already-built artifact",
	Long: `Bundle wraps a compiled shared library in the platform plugin-bundle
layout without rebuilding it. The artifact path is either given explicitly
with --artifact or derived from the profile and target the same way the
toolchain lays out its output tree.

Examples:
  plugforge bundle --product-name Demo --target demo-plugin
  plugforge bundle --product-name Demo --artifact target/release/libdemo_plugin.so`,
	RunE: runBundle,
}

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.Flags().StringVar(&bundleArtifact, "artifact", "", "Path to the compiled shared library")
	bundleCmd.Flags().StringVar(&bundleProduct, "product-name", "", "Product name used for the bundle")
	bundleCmd.Flags().StringVarP(&bundleProfile, "profile", "p", "", `Build profile used to derive the artifact path (default "release")`)
	bundleCmd.Flags().StringVarP(&bundleTarget, "target", "t", "", "Target package used to derive the artifact path")
	bundleCmd.Flags().StringVarP(&bundleOutputDir, "output-dir", "o", "", "Directory the bundle is assembled in")
	bundleCmd.Flags().BoolVarP(&bundleVerbose, "verbose", "v", false, "Show detailed output")
}

func runBundle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}
	cfg := ws.Resolver.Config()

	product := ws.Resolver.ResolveProductName(bundleProduct)
	if product == "" {
		return fmt.Errorf("product name is required (use --product-name or set bundle.product_name in plugforge.yaml)")
	}

	artifactPath := bundleArtifact
	if artifactPath == "" {
		spec := pipeline.BuildSpec{
			Profile: ws.Resolver.ResolveProfile(bundleProfile),
			Target:  ws.Resolver.ResolveTarget(bundleTarget),
		}
		if spec.Target == "" {
			return fmt.Errorf("either --artifact or a target package is required to locate the artifact")
		}
		artifactPath = artifactPathFor(ws, spec)
	}

	bundler := bundle.New(resolveOutputDir(ws, bundleOutputDir), bundleVerbose,
		bundle.WithIdentifier(cfg.Bundle.Identifier),
		bundle.WithVersion(cfg.Project.Version),
	)

	b, err := bundler.Bundle(ctx, pipeline.BundleSpec{
		Artifact:    pipeline.Artifact{Path: artifactPath},
		ProductName: product,
	})
	if err != nil {
		return err
	}

	fmt.Printf("📦 Bundle: %s\n", b.RootPath)
	return nil
}

// artifactPathFor derives the toolchain output path for a profile and target.
func artifactPathFor(ws *workspace, spec pipeline.BuildSpec) string {
	return filepath.Join(ws.Root, "target", platform.ProfileDir(spec.Profile), platform.SharedLibraryName(spec.Target))
}
