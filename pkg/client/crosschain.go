package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fusion-swap/pkg/types"
)

// CrossChainClient talks to the HTLC settlement venue. Quotes carry the
// preset's secretsCount; order submission binds the hash lock and secret
// hashes; the remaining calls serve the settlement watcher.
type CrossChainClient struct {
	httpVenue
}

// NewCrossChainClient creates a client for the cross-chain venue.
func NewCrossChainClient(baseURL, apiKey string) *CrossChainClient {
	return &CrossChainClient{httpVenue: newHTTPVenue(baseURL, apiKey)}
}

func (c *CrossChainClient) Quote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error) {
	body := map[string]any{
		"srcChainId":      req.SourceChainID,
		"dstChainId":      req.DestChainID,
		"srcTokenAddress": req.SourceToken,
		"dstTokenAddress": req.DestToken,
		"amount":          req.SourceAmount,
		"walletAddress":   req.WalletAddress,
	}
	payload, err := c.doJSON(ctx, http.MethodPost, "/quote", body)
	if err != nil {
		return nil, err
	}

	destAmount, err := ExtractDestAmount(payload)
	if err != nil {
		return nil, err
	}

	quote := &types.Quote{
		SourceToken:   req.SourceToken,
		DestToken:     req.DestToken,
		SourceChainID: req.SourceChainID,
		DestChainID:   req.DestChainID,
		SourceAmount:  req.SourceAmount,
		DestAmount:    destAmount,
	}
	if gas, ok := stringValue(payload["gas"]); ok {
		quote.EstimatedGas = gas
	}
	if bps, ok := intValue(payload["priceImpactBps"]); ok {
		quote.PriceImpactBps = bps
	}

	// The recommended preset decides how many partial fills the order may
	// be split into, hence how many secrets to generate.
	preset, ok := payload["preset"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no preset in cross-chain quote response")
	}
	count, ok := intValue(preset["secretsCount"])
	if !ok {
		return nil, fmt.Errorf("no secretsCount in cross-chain quote preset")
	}
	quote.SecretsCount = count
	return quote, nil
}

func (c *CrossChainClient) SubmitOrder(ctx context.Context, sub *OrderSubmission) (string, error) {
	body := map[string]any{
		"srcChainId":      sub.Request.SourceChainID,
		"dstChainId":      sub.Request.DestChainID,
		"srcTokenAddress": sub.Request.SourceToken,
		"dstTokenAddress": sub.Request.DestToken,
		"amount":          sub.Quote.SourceAmount,
		"walletAddress":   sub.Request.WalletAddress,
		"hashLock":        sub.HashLock,
		"secretHashes":    sub.SecretHashes,
		"signature":       sub.Signature,
	}
	payload, err := c.doJSON(ctx, http.MethodPost, "/order", body)
	if err != nil {
		return "", err
	}

	orderHash, ok := stringValue(payload["orderHash"])
	if !ok {
		return "", &types.VenueError{Kind: types.ErrSubmissionFailed, Message: "venue accepted order without returning an order hash"}
	}
	return orderHash, nil
}

func (c *CrossChainClient) ReadyFills(ctx context.Context, orderHash string) ([]types.ReadyFill, error) {
	payload, err := c.doJSON(ctx, http.MethodGet, "/orders/"+orderHash+"/ready-fills", nil)
	if err != nil {
		return nil, err
	}

	raw, ok := payload["fills"].([]any)
	if !ok {
		return nil, nil
	}
	fills := make([]types.ReadyFill, 0, len(raw))
	for _, entry := range raw {
		fill, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if idx, ok := intValue(fill["idx"]); ok {
			fills = append(fills, types.ReadyFill{Idx: idx})
		}
	}
	return fills, nil
}

func (c *CrossChainClient) DiscloseSecret(ctx context.Context, orderHash, secret string) error {
	body := map[string]any{
		"orderHash": orderHash,
		"secret":    secret,
	}
	_, err := c.doJSON(ctx, http.MethodPost, "/orders/"+orderHash+"/secrets", body)
	return err
}

func (c *CrossChainClient) OrderStatus(ctx context.Context, orderHash string) (types.OrderStatus, error) {
	payload, err := c.doJSON(ctx, http.MethodGet, "/orders/"+orderHash+"/status", nil)
	if err != nil {
		return "", err
	}
	status, ok := stringValue(payload["status"])
	if !ok {
		return "", fmt.Errorf("no status in venue order status response")
	}
	return parseOrderStatus(status)
}

func parseOrderStatus(raw string) (types.OrderStatus, error) {
	switch strings.ToLower(raw) {
	case "created":
		return types.StatusCreated, nil
	case "pending", "in-progress":
		return types.StatusPending, nil
	case "submitted", "open":
		return types.StatusSubmitted, nil
	case "executed", "filled":
		return types.StatusExecuted, nil
	case "expired":
		return types.StatusExpired, nil
	case "refunded", "cancelled":
		return types.StatusRefunded, nil
	}
	return "", fmt.Errorf("unknown venue order status %q", raw)
}
