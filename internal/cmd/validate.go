package cmd

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/plugforge/plugforge-cli/internal/config"
	"github.com/plugforge/plugforge-cli/internal/toolchain"
)

//go:embed schemas/plugforge-config.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the plugforge.yaml configuration",
	Long: `Validates the plugforge.yaml configuration file against its JSON Schema,
then checks that the referenced toolchain is available.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	root, err := findWorkspaceRoot()
	if err != nil {
		return err
	}

	configPath := filepath.Join(root, config.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", config.ConfigFileName, root)
	}

	fmt.Printf("🔍 Validating %s...\n", config.ConfigFileName)

	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", config.ConfigFileName, err)
	}

	// The schema speaks JSON; re-encode the YAML document first
	var doc interface{}
	if err := yaml.Unmarshal(configBytes, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.ConfigFileName, err)
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert config to JSON: %w", err)
	}

	schemaBytes, err := schemaFS.ReadFile("schemas/plugforge-config.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(docJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		fmt.Printf("❌ %s is invalid:\n", config.ConfigFileName)
		for _, desc := range result.Errors() {
			fmt.Printf("   - %s\n", desc)
		}
		return fmt.Errorf("%s failed schema validation", config.ConfigFileName)
	}

	fmt.Printf("✅ %s is valid!\n", config.ConfigFileName)

	// Semantic checks beyond the schema
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := validateSemantics(cfg); err != nil {
		fmt.Printf("⚠️  Semantic warning: %v\n", err)
		return nil
	}

	// Run the toolchain to prove it is actually invocable
	version, err := toolchainVersion(cmd.Context(), cfg, root)
	if err != nil {
		fmt.Printf("⚠️  Semantic warning: toolchain is not runnable: %v\n", err)
	} else if version != "" {
		fmt.Printf("🔧 %s\n", version)
	}

	return nil
}

// toolchainVersion builds the configured toolchain and asks it for its
// version string.
func toolchainVersion(ctx context.Context, cfg *config.Config, root string) (string, error) {
	builder, err := newBuilder(cfg, root, false)
	if err != nil {
		return "", err
	}

	v, ok := builder.(toolchain.Versioner)
	if !ok {
		return "", nil
	}
	return v.Version(ctx)
}

// validateSemantics checks things the schema cannot express.
func validateSemantics(cfg *config.Config) error {
	known := false
	for _, name := range toolchain.List() {
		if name == cfg.Build.Toolchain {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("build.toolchain %q is not registered (available: %v)", cfg.Build.Toolchain, toolchain.List())
	}

	if cfg.Build.ToolchainPath != "" {
		if _, err := os.Stat(cfg.Build.ToolchainPath); err != nil {
			return fmt.Errorf("build.toolchain_path does not exist: %s", cfg.Build.ToolchainPath)
		}
	}

	return nil
}
