package main

import (
	"fmt"
	"os"

	"github.com/plugforge/plugforge-cli/internal/cmd"
	"github.com/plugforge/plugforge-cli/internal/pipeline"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(pipeline.ExitCodeFor(err))
	}
}
