package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flare/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show flare version information",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(os.Stdout, "flare %s\n", version.Version)
		if version.GitCommit != "" {
			_, _ = fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			_, _ = fmt.Fprintf(os.Stdout, "built: %s\n", version.BuildDate)
		}
	},
}
