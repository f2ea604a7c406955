package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flare/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the flare module snapshot cache",
	Long:  "Remove all cached module snapshots from the standard cache location.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("flare")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop cache: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "cleaned %s\n", cache.Dir())
	return nil
}
