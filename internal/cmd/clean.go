package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plugforge/plugforge-cli/internal/toolchain"
)

var cleanDeep bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove assembled bundles",
	Long: `Clean removes the bundle output directory.

Use --deep to also run the toolchain's own clean, removing compiled
artifacts for all profiles.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(&cleanDeep, "deep", false, "Also clean the toolchain build tree")
}

func runClean(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace()
	if err != nil {
		return err
	}

	outDir := resolveOutputDir(ws, "")
	if _, err := os.Stat(outDir); err == nil {
		fmt.Printf("🗑️  Removing %s...\n", outDir)
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", outDir, err)
		}
	}

	if cleanDeep {
		cargo, err := toolchain.NewCargo(ws.Root, false)
		if err != nil {
			return err
		}
		fmt.Println("🗑️  Running cargo clean...")
		if err := cargo.Clean(cmd.Context()); err != nil {
			return err
		}
	}

	fmt.Println("✅ Clean completed")
	return nil
}
