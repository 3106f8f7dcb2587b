package cmd

import (
	"fmt"
	"strings"

	"fusion-swap/pkg/parser"
	"fusion-swap/pkg/types"
)

// buildSwapRequest turns CLI args plus chain flags into an engine
// request: tokens resolved to contract addresses, amount converted to
// the source token's smallest unit.
func buildSwapRequest(args []string, fromChain, toChain int64, walletAddr string) (*types.SwapRequest, error) {
	parsed, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	if fromChain == 0 || toChain == 0 {
		return nil, fmt.Errorf("--from-chain and --to-chain are required")
	}

	srcToken, err := parser.ResolveToken(parsed.SourceToken, fromChain)
	if err != nil {
		return nil, fmt.Errorf("source token: %w", err)
	}
	dstToken, err := parser.ResolveToken(parsed.DestToken, toChain)
	if err != nil {
		return nil, fmt.Errorf("destination token: %w", err)
	}

	// Known symbols get their amount converted; raw addresses must be
	// given in the smallest unit already.
	amount := parsed.Amount
	if srcToken.Decimals > 0 {
		amount, err = parser.ToSmallestUnit(parsed.Amount, srcToken.Decimals)
		if err != nil {
			return nil, err
		}
	} else if strings.Contains(amount, ".") {
		return nil, fmt.Errorf("amount for token address %s must be an integer in the smallest unit", parsed.SourceToken)
	}

	return &types.SwapRequest{
		SourceToken:   srcToken.Address,
		DestToken:     dstToken.Address,
		SourceChainID: fromChain,
		DestChainID:   toChain,
		SourceAmount:  amount,
		WalletAddress: walletAddr,
	}, nil
}
