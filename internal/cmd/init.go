package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plugforge/plugforge-cli/internal/config"
)

var (
	initName  string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter plugforge.yaml",
	Long: `Init writes a starter plugforge.yaml into the current directory with
the default toolchain, profile and output directory filled in.

Examples:
  plugforge init --name octasine
  plugforge init --force`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "Project name (defaults to the directory name)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing plugforge.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	path, err := writeStarterConfig(dir, initName, initForce)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created %s\n", path)
	fmt.Println("💡 Set build.target and bundle.product_name, then run `plugforge build`")
	return nil
}

// writeStarterConfig writes a default config into dir, refusing to
// overwrite an existing one unless force is set.
func writeStarterConfig(dir, name string, force bool) (string, error) {
	path := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigFileName)
	}

	cfg := config.Default()
	if name == "" {
		name = filepath.Base(dir)
	}
	cfg.Project.Name = name

	if err := cfg.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
