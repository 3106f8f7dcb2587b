package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chainsCmd = &cobra.Command{
	Use:     "chains",
	Aliases: []string{"list-chains", "ls"},
	Short:   "List the configured chains",
	Long: `List the chains in the validated registry. Swaps are only routed
between chains that appear here.

Examples:
  fusion-swap chains
  fusion-swap chains --json`,
	Run: runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}

func runChains(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, err := buildEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	registry := eng.router.Registry()

	if jsonOutput {
		chains := map[int64]string{}
		for _, id := range registry.ChainIDs() {
			chains[id] = registry.Name(id)
		}
		jsonData, _ := json.MarshalIndent(chains, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	color.Green("\nConfigured chains:")
	for _, id := range registry.ChainIDs() {
		rpc := ""
		if _, ok := eng.cfg.RPCURLs()[id]; ok {
			rpc = color.CyanString("  [rpc configured]")
		}
		fmt.Printf("  %-8d %s%s\n", id, registry.Name(id), rpc)
	}
	fmt.Println()
}
