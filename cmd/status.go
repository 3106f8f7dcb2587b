package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fusion-swap/pkg/client"
	"fusion-swap/pkg/types"
)

var (
	watchStatus   bool
	watchInterval int
)

var statusCmd = &cobra.Command{
	Use:   "status <order-hash>",
	Short: "Check the status of a cross-chain order",
	Long: `Check the settlement status of a cross-chain order by its order hash.

Examples:
  fusion-swap status 0x1234...abcd
  fusion-swap status 0x1234...abcd --watch
  fusion-swap status 0x1234...abcd --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "Watch status updates continuously")
	statusCmd.Flags().IntVar(&watchInterval, "interval", 5, "Polling interval in seconds (when watching)")
}

func runStatus(cmd *cobra.Command, args []string) {
	orderHash := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	eng, err := buildEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if watchStatus {
		watchOrderStatus(eng.crossChain, orderHash, jsonOutput)
	} else {
		checkOrderStatus(eng.crossChain, orderHash, jsonOutput)
	}
}

func checkOrderStatus(venue *client.CrossChainClient, orderHash string, jsonOutput bool) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking order status..."
		s.Start()
	}

	status, err := venue.OrderStatus(context.Background(), orderHash)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	displayStatus(orderHash, status, jsonOutput)
}

func watchOrderStatus(venue *client.CrossChainClient, orderHash string, jsonOutput bool) {
	interval := time.Duration(watchInterval) * time.Second
	if interval < time.Second {
		interval = time.Second
	}

	for {
		status, err := venue.OrderStatus(context.Background(), orderHash)
		if err != nil {
			printError(err)
		} else {
			displayStatus(orderHash, status, jsonOutput)
			if status.IsTerminal() {
				return
			}
		}
		time.Sleep(interval)
	}
}

func displayStatus(orderHash string, status types.OrderStatus, jsonOutput bool) {
	if jsonOutput {
		jsonData, _ := json.MarshalIndent(map[string]string{
			"order_hash": orderHash,
			"status":     string(status),
		}, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	stamp := time.Now().Format("15:04:05")
	switch status {
	case types.StatusExecuted:
		color.Green("[%s] %s: %s", stamp, orderHash, status)
	case types.StatusExpired, types.StatusRefunded:
		color.Red("[%s] %s: %s", stamp, orderHash, status)
	default:
		color.Yellow("[%s] %s: %s", stamp, orderHash, status)
	}
}
