package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fusion-swap/pkg/types"
)

// Per-request timeout. Kept shorter than the settlement watcher's poll
// interval so a slow venue call cannot stack iterations.
const requestTimeout = 10 * time.Second

// SwapCallData is the transaction payload a same-chain venue returns for
// the wallet to sign and broadcast.
type SwapCallData struct {
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	GasLimit uint64 `json:"gas"`
}

// SameChainVenue is the single-chain aggregation venue. Quote and
// BuildSwap hit the aggregation-optimized endpoint; the Raw variants hit
// the venue's raw swap API, used as the fallback for token classes the
// aggregator rejects.
type SameChainVenue interface {
	Quote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error)
	RawQuote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error)
	BuildSwap(ctx context.Context, req *types.SwapRequest) (*SwapCallData, error)
	BuildRawSwap(ctx context.Context, req *types.SwapRequest) (*SwapCallData, error)
}

// CrossChainVenue is the HTLC settlement venue.
type CrossChainVenue interface {
	Quote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error)
	SubmitOrder(ctx context.Context, sub *OrderSubmission) (string, error)
	ReadyFills(ctx context.Context, orderHash string) ([]types.ReadyFill, error)
	DiscloseSecret(ctx context.Context, orderHash, secret string) error
	OrderStatus(ctx context.Context, orderHash string) (types.OrderStatus, error)
}

// OrderSubmission carries everything the cross-chain venue needs to
// accept an HTLC order. Only hashes travel; secrets stay client-side.
type OrderSubmission struct {
	Request      *types.SwapRequest
	Quote        *types.Quote
	HashLock     string
	SecretHashes []string
	Signature    string
}

// httpVenue holds the pieces shared by both venue clients.
type httpVenue struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func newHTTPVenue(baseURL, apiKey string) httpVenue {
	return httpVenue{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// doJSON issues a request and decodes the response body into a generic
// map with number preservation, so amount fields are not mangled into
// float64 on the way through.
func (v *httpVenue) doJSON(ctx context.Context, method, path string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, &types.VenueError{Kind: types.ErrVenueUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.VenueError{Kind: types.ErrVenueUnavailable, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, venueErrorFromBody(resp.StatusCode, raw)
	}

	payload := map[string]any{}
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
		}
	}
	return payload, nil
}

// venueErrorFromBody digs the human-readable message out of an error
// response before classifying it. Venues disagree on the field name, so
// try the usual suspects and fall back to the raw body.
func venueErrorFromBody(status int, raw []byte) error {
	var errResp map[string]any
	if err := json.Unmarshal(raw, &errResp); err == nil {
		for _, key := range []string{"message", "description", "error"} {
			if msg, ok := errResp[key].(string); ok && msg != "" {
				return types.ClassifyVenueError(msg)
			}
		}
	}
	return types.ClassifyVenueError(fmt.Sprintf("status %d: %s", status, string(raw)))
}
