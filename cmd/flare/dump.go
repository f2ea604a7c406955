package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flare/internal/driver"
)

var dumpNamesOnly bool

var dumpCmd = &cobra.Command{
	Use:   "dump <snapshot.mp>",
	Short: "Print the contents of a module snapshot",
	Long:  "Decode a module snapshot file and print its symbol surface and rendered IR text.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpNamesOnly, "names", false, "list registered symbol names only")
}

func runDump(_ *cobra.Command, args []string) error {
	payload, err := driver.ReadPayload(args[0])
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	_, _ = header.Fprintf(os.Stdout, "module %s\n", payload.Module)
	if payload.Export != "" {
		fmt.Printf("entry: @%s\n", payload.Export)
	}
	fmt.Printf("functions: %d, types: %d\n", len(payload.Funcs), len(payload.Types))

	if dumpNamesOnly {
		for _, t := range payload.Types {
			fmt.Printf("type @%s\n", t.Name)
		}
		for _, f := range payload.Funcs {
			if f.Extern != "" {
				fmt.Printf("extern @%s = native<%s>\n", f.Name, f.Extern)
				continue
			}
			fmt.Printf("def @%s\n", f.Name)
		}
		return nil
	}

	fmt.Println()
	fmt.Print(payload.Text)
	return nil
}
