package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plugforge",
	Short: "Plugforge CLI - build, bundle and install native audio plugins",
	Long: `Plugforge is a CLI tool for native audio-plugin development.
It compiles a plugin crate with the Rust toolchain, wraps the shared library
in the platform plugin-bundle layout, and installs the bundle into the
user's plugin directory.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
