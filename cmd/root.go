package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fusion-swap/config"
	"fusion-swap/pkg/client"
	"fusion-swap/pkg/executor"
	"fusion-swap/pkg/router"
	"fusion-swap/pkg/wallet"
)

var rootCmd = &cobra.Command{
	Use:   "fusion-swap",
	Short: "A CLI for same-chain and cross-chain token swaps",
	Long: `fusion-swap routes a swap to the right settlement venue: same-chain
requests go through the aggregation venue, cross-chain requests settle
atomically through HTLC orders with client-held secrets.

Examples:
  fusion-swap quote 100 USDC to ETH --from-chain 1 --to-chain 1
  fusion-swap swap 500 USDC to ETH --from-chain 1 --to-chain 8453
  fusion-swap status <order-hash> --watch
  fusion-swap chains`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

// engine bundles the wired-up collaborators the commands share.
type engine struct {
	cfg        *config.Config
	log        *zap.Logger
	sameChain  *client.AggregationClient
	crossChain *client.CrossChainClient
	router     *router.Router
}

// buildEngine loads config and wires the venue clients and router. The
// chain registry is validated here, so a bad config fails before any
// venue call.
func buildEngine(verbose bool) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	registry, err := router.NewChainRegistry(cfg.ChainNames())
	if err != nil {
		return nil, err
	}

	sameChain := client.NewAggregationClient(cfg.AggregationBaseURL, cfg.APIKey)
	crossChain := client.NewCrossChainClient(cfg.CrossChainBaseURL, cfg.APIKey)

	r, err := router.New(registry, sameChain, crossChain, log)
	if err != nil {
		return nil, err
	}

	return &engine{
		cfg:        cfg,
		log:        log,
		sameChain:  sameChain,
		crossChain: crossChain,
		router:     r,
	}, nil
}

// buildExecutor extends the engine with the signer and tx sender needed
// to place orders. Requires a configured private key.
func (e *engine) buildExecutor() (*executor.Executor, error) {
	if e.cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key not found. Set FUSION_SWAP_PRIVATE_KEY or add private_key to .fusion-swap.yaml")
	}
	signer, err := wallet.NewPrivateKeySigner(e.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	sender, err := wallet.NewEVMSender(e.cfg.RPCURLs(), signer)
	if err != nil {
		return nil, err
	}
	return executor.New(executor.Options{
		Router:     e.router,
		SameChain:  e.sameChain,
		CrossChain: e.crossChain,
		Signer:     signer,
		Sender:     sender,
		Logger:     e.log,
	})
}
