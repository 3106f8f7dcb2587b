package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fusion-swap/pkg/types"
)

var (
	quoteFromChain int64
	quoteToChain   int64
	quoteWallet    string
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <source-token> to <dest-token>",
	Short: "Fetch a swap quote without placing an order",
	Long: `Fetch a quote for a same-chain or cross-chain swap. The route is
chosen from the chain ids: equal ids use the aggregation venue, different
ids use the cross-chain HTLC venue.

Quotes are advisory; placing an order always re-fetches a fresh one.

Examples:
  fusion-swap quote 100 USDC to ETH --from-chain 1 --to-chain 1
  fusion-swap quote 500 USDC to ETH --from-chain 1 --to-chain 8453`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().Int64Var(&quoteFromChain, "from-chain", 0, "Source chain id (REQUIRED)")
	quoteCmd.Flags().Int64Var(&quoteToChain, "to-chain", 0, "Destination chain id (REQUIRED)")
	quoteCmd.Flags().StringVar(&quoteWallet, "wallet", "", "Wallet address (used by the cross-chain venue for pricing)")
}

func runQuote(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, err := buildEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	req, err := buildSwapRequest(args, quoteFromChain, quoteToChain, quoteWallet)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	quote, err := eng.router.GetQuote(context.Background(), req)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(quote, "", "  ")
		fmt.Println(string(jsonData))
		return
	}
	displayQuote(quote, req)
}

func displayQuote(quote *types.Quote, req *types.SwapRequest) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Route:             %s\n", color.CyanString(string(types.RouteFor(req))))
	fmt.Printf("  From:              %s (chain %d)\n", color.YellowString(quote.SourceToken), quote.SourceChainID)
	fmt.Printf("  To:                %s (chain %d)\n", color.YellowString(quote.DestToken), quote.DestChainID)
	fmt.Printf("  Amount In:         %s\n", quote.SourceAmount)
	fmt.Printf("  Amount Out (est):  ~%s\n", quote.DestAmount)
	if quote.EstimatedGas != "" {
		fmt.Printf("  Estimated Gas:     %s\n", quote.EstimatedGas)
	}
	if quote.PriceImpactBps > 0 {
		fmt.Printf("  Price Impact:      %d bps\n", quote.PriceImpactBps)
	}
	if quote.SecretsCount > 0 {
		fmt.Printf("  Partial Fills:     up to %d\n", quote.SecretsCount)
	}
	fmt.Println()
}
