package parser

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParsedSwap is the raw result of parsing a swap command, before token
// resolution and unit conversion.
type ParsedSwap struct {
	Amount      string // decimal, human units
	SourceToken string
	DestToken   string
}

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 100 USDC to ETH"
//   - "1.5 WETH to DAI"
//   - "swap 500 0xa0b8... to 0xeeee..."
func ParseSwapCommand(command string) (*ParsedSwap, error) {
	command = strings.TrimSpace(command)

	// Remove the word "swap" if present at the beginning
	if len(command) >= 5 && strings.EqualFold(command[:5], "swap ") {
		command = command[5:]
	}

	// Pattern: <amount> <source_token> TO <dest_token>
	pattern := regexp.MustCompile(`(?i)^(\d+\.?\d*)\s+(\S+)\s+TO\s+(\S+)$`)
	matches := pattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: 'swap <amount> <token> to <token>' (e.g., 'swap 100 USDC to ETH')")
	}

	return &ParsedSwap{
		Amount:      matches[1],
		SourceToken: matches[2],
		DestToken:   matches[3],
	}, nil
}

// Token is a resolved token on a specific chain.
type Token struct {
	Address  string
	Decimals int
}

// NativeTokenAddress is the conventional pseudo-address venues use for a
// chain's native asset.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// wellKnownTokens resolves common symbols per chain. Anything else must
// be passed as a contract address.
var wellKnownTokens = map[int64]map[string]Token{
	1: {
		"ETH":  {NativeTokenAddress, 18},
		"WETH": {"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", 18},
		"USDC": {"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", 6},
		"USDT": {"0xdAC17F958D2ee523a2206206994597C13D831ec7", 6},
		"DAI":  {"0x6B175474E89094C44Da98b954EedeAC495271d0F", 18},
	},
	10: {
		"ETH":  {NativeTokenAddress, 18},
		"USDC": {"0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", 6},
	},
	137: {
		"POL":  {NativeTokenAddress, 18},
		"USDC": {"0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", 6},
	},
	8453: {
		"ETH":  {NativeTokenAddress, 18},
		"USDC": {"0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", 6},
	},
	42161: {
		"ETH":  {NativeTokenAddress, 18},
		"USDC": {"0xaf88d065e77c8cC2239327C5EDb3A432268e5831", 6},
	},
}

// NormalizeTokenSymbol normalizes token symbols to standard format
func NormalizeTokenSymbol(symbol string) string {
	// Convert to uppercase for consistency
	symbol = strings.TrimSpace(strings.ToUpper(symbol))

	// Handle common aliases
	aliases := map[string]string{
		"MATIC":  "POL",
		"USDC.E": "USDC",
	}

	if normalized, exists := aliases[symbol]; exists {
		return normalized
	}

	return symbol
}

// ResolveToken turns a symbol or contract address into a Token on the
// given chain.
func ResolveToken(symbolOrAddress string, chainID int64) (Token, error) {
	if common.IsHexAddress(symbolOrAddress) {
		// Contract address passes through; amounts for unknown tokens
		// must already be in the smallest unit.
		return Token{Address: symbolOrAddress, Decimals: 0}, nil
	}

	symbol := NormalizeTokenSymbol(symbolOrAddress)
	chainTokens, exists := wellKnownTokens[chainID]
	if !exists {
		return Token{}, fmt.Errorf("no well-known tokens for chain %d; pass a contract address", chainID)
	}
	token, exists := chainTokens[symbol]
	if !exists {
		return Token{}, fmt.Errorf("token '%s' not known on chain %d; pass a contract address", symbolOrAddress, chainID)
	}
	return token, nil
}

// ToSmallestUnit converts a decimal amount in human units to an integer
// string in the token's smallest unit, without float rounding.
func ToSmallestUnit(amount string, decimals int) (string, error) {
	parts := strings.SplitN(amount, ".", 2)
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if len(frac) > decimals {
		return "", fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	value, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return "", fmt.Errorf("invalid amount %q", amount)
	}
	if value.Sign() <= 0 {
		return "", fmt.Errorf("amount must be positive")
	}
	return value.String(), nil
}
