package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fusion-swap/pkg/types"
)

var (
	swapFromChain int64
	swapToChain   int64
	noConfirm     bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <source-token> to <dest-token>",
	Short: "Execute a same-chain or cross-chain token swap",
	Long: `Execute a token swap. Same-chain swaps are built by the aggregation
venue and broadcast from your wallet. Cross-chain swaps submit an HTLC
order; secrets stay on this machine and are released one by one as the
venue reports escrows ready.

A fresh quote is always fetched at order time; the quote command's output
is never reused.

Examples:
  # Same-chain swap
  fusion-swap swap 100 USDC to ETH --from-chain 1 --to-chain 1

  # Cross-chain swap (waits for settlement; secrets are held locally)
  fusion-swap swap 500 USDC to ETH --from-chain 1 --to-chain 8453

  # Skip confirmation
  fusion-swap swap 100 USDC to ETH --from-chain 1 --to-chain 1 --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().Int64Var(&swapFromChain, "from-chain", 0, "Source chain id (REQUIRED)")
	swapCmd.Flags().Int64Var(&swapToChain, "to-chain", 0, "Destination chain id (REQUIRED)")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, err := buildEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	exec, err := eng.buildExecutor()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	req, err := buildSwapRequest(args, swapFromChain, swapToChain, "")
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Show an advisory quote before asking for confirmation. The
	// executor re-fetches its own fresh quote when building the order.
	if !noConfirm && !jsonOutput {
		quote, err := eng.router.GetQuote(context.Background(), req)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		displayQuote(quote, req)
		if !confirmSwap() {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Placing order..."
		s.Start()
	}

	order, err := exec.PlaceOrder(context.Background(), req)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(order, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displayOrder(order)
	}

	// The watcher holds the secrets; the process must outlive settlement
	// or the escrows can never be unlocked from this side.
	if order.Route == types.RouteCrossChain {
		waitForSettlement(exec.Watchers(), jsonOutput)
	}
}

func displayOrder(order *types.Order) {
	color.Green("\n✓ Order submitted!")
	fmt.Printf("  Route:    %s\n", order.Route)
	fmt.Printf("  Status:   %s\n", color.YellowString(string(order.Status)))
	if order.OrderHash != "" {
		fmt.Printf("  Order:    %s\n", color.CyanString(order.OrderHash))
		fmt.Println("\nYou can monitor settlement using:")
		color.Cyan("  fusion-swap status %s --watch\n", order.OrderHash)
	}
	if order.TxHash != "" {
		fmt.Printf("  Tx Hash:  %s\n", color.CyanString(order.TxHash))
	}
}

// waitForSettlement blocks on the watcher registry, cancelling cleanly on
// SIGINT/SIGTERM so no polling loop outlives the user's intent.
func waitForSettlement(watchers interface {
	Shutdown()
	Wait()
}, jsonOutput bool) {
	done := make(chan struct{})
	go func() {
		watchers.Wait()
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if !jsonOutput {
		fmt.Println("\nWaiting for settlement (Ctrl-C to stop watching)...")
	}

	select {
	case <-done:
	case <-sigCh:
		watchers.Shutdown()
	}
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
