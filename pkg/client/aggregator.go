package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"fusion-swap/pkg/types"
)

// AggregationClient talks to the same-chain aggregation venue. The
// primary endpoints route through the venue's aggregation optimizer; the
// raw endpoints are its plain swap API, kept for token classes the
// optimizer rejects.
type AggregationClient struct {
	httpVenue
}

// NewAggregationClient creates a client for the same-chain venue.
func NewAggregationClient(baseURL, apiKey string) *AggregationClient {
	return &AggregationClient{httpVenue: newHTTPVenue(baseURL, apiKey)}
}

func (c *AggregationClient) Quote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error) {
	return c.quote(ctx, req, fmt.Sprintf("/swap/v6/%d/quote", req.SourceChainID))
}

func (c *AggregationClient) RawQuote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error) {
	return c.quote(ctx, req, fmt.Sprintf("/rawswap/v1/%d/quote", req.SourceChainID))
}

func (c *AggregationClient) BuildSwap(ctx context.Context, req *types.SwapRequest) (*SwapCallData, error) {
	return c.buildSwap(ctx, req, fmt.Sprintf("/swap/v6/%d/swap", req.SourceChainID))
}

func (c *AggregationClient) BuildRawSwap(ctx context.Context, req *types.SwapRequest) (*SwapCallData, error) {
	return c.buildSwap(ctx, req, fmt.Sprintf("/rawswap/v1/%d/swap", req.SourceChainID))
}

func (c *AggregationClient) quote(ctx context.Context, req *types.SwapRequest, path string) (*types.Quote, error) {
	payload, err := c.doJSON(ctx, http.MethodGet, path+"?"+swapQuery(req).Encode(), nil)
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
	return quote, nil
}

func (c *AggregationClient) buildSwap(ctx context.Context, req *types.SwapRequest, path string) (*SwapCallData, error) {
	query := swapQuery(req)
	query.Set("from", req.WalletAddress)

	payload, err := c.doJSON(ctx, http.MethodGet, path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	tx, ok := payload["tx"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no transaction payload in venue swap response")
	}

	call := &SwapCallData{}
	call.To, _ = stringValue(tx["to"])
	call.Data, _ = stringValue(tx["data"])
	call.Value, _ = stringValue(tx["value"])
	if gas, ok := intValue(tx["gas"]); ok {
		call.GasLimit = uint64(gas)
	}
	if call.To == "" || call.Data == "" {
		return nil, fmt.Errorf("incomplete transaction payload in venue swap response")
	}
	return call, nil
}

func swapQuery(req *types.SwapRequest) url.Values {
	query := url.Values{}
	query.Set("src", req.SourceToken)
	query.Set("dst", req.DestToken)
	query.Set("amount", req.SourceAmount)
	return query
}

func intValue(v any) (int, bool) {
	switch value := v.(type) {
	case json.Number:
		n, err := value.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
