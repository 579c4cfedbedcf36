package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plugforge/plugforge-cli/internal/installer"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
	"github.com/plugforge/plugforge-cli/internal/platform"
	"github.com/plugforge/plugforge-cli/internal/ui"
)

var (
	installBundlePath string
	installProduct    string
	installRoot       string
	installVerbose    bool
	installYes        bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install an already-built bundle",
	Long: `Install copies a previously assembled bundle into the plugin directory,
replacing any installed bundle of the same name. Running install twice with
the same bundle leaves the destination unchanged.

Examples:
  plugforge install --product-name Demo
  plugforge install --bundle target/bundle/Demo.bundle --install-root ~/.vst`,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installBundlePath, "bundle", "", "Path to the bundle directory")
	installCmd.Flags().StringVar(&installProduct, "product-name", "", "Product name used to locate the bundle")
	installCmd.Flags().StringVar(&installRoot, "install-root", "", "Plugin directory to install into (default: platform convention)")
	installCmd.Flags().BoolVarP(&installVerbose, "verbose", "v", false, "Show detailed output")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Overwrite an installed bundle without asking")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	bundlePath := installBundlePath
	if bundlePath == "" {
		product := ws.Resolver.ResolveProductName(installProduct)
		if product == "" {
			return fmt.Errorf("either --bundle or a product name is required to locate the bundle")
		}
		bundlePath = filepath.Join(resolveOutputDir(ws, ""), platform.BundleName(product))
	}

	if _, err := os.Stat(bundlePath); err != nil {
		return fmt.Errorf("bundle not found at %s (run 'plugforge build' first)", bundlePath)
	}

	root := ws.Resolver.ResolveInstallRoot(installRoot)
	if root == "" {
		root = platform.DefaultInstallRoot()
	}

	dest := filepath.Join(root, filepath.Base(bundlePath))
	if !installYes {
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

	inst := installer.New(installVerbose, true)
	if err := inst.Install(ctx, pipeline.Bundle{RootPath: bundlePath}, pipeline.InstallTarget{DestinationRoot: root}); err != nil {
		return err
	}

	fmt.Printf("✅ Installed into %s\n", root)
	return nil
}
