package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregationQuote_BuildsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swap/v6/1/quote", r.URL.Path)
		assert.Equal(t, "500000000", r.URL.Query().Get("amount"))
		json.NewEncoder(w).Encode(map[string]any{
			"dstAmount": "170000000000000000",
			"gas":       "210000",
		})
	}))
	defer server.Close()

	c := NewAggregationClient(server.URL, "")
	req := testRequest()
	req.DestChainID = 1

	quote, err := c.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "170000000000000000", quote.DestAmount)
	assert.Equal(t, "210000", quote.EstimatedGas)
}

func TestAggregationRawQuote_UsesRawEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rawswap/v1/1/quote", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"amountOut": "99"})
	}))
	defer server.Close()

	c := NewAggregationClient(server.URL, "")
	req := testRequest()
	req.DestChainID = 1

	quote, err := c.RawQuote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "99", quote.DestAmount)
}

func TestBuildSwap_ParsesCallData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swap/v6/1/swap", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("from"))
		json.NewEncoder(w).Encode(map[string]any{
			"dstAmount": "1",
			"tx": map[string]any{
				"to":    "0x2222222222222222222222222222222222222222",
				"data":  "0xdead",
				"value": "0",
				"gas":   250000,
			},
		})
	}))
	defer server.Close()

	c := NewAggregationClient(server.URL, "")
	req := testRequest()
	req.DestChainID = 1

	call, err := c.BuildSwap(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", call.To)
	assert.Equal(t, "0xdead", call.Data)
	assert.Equal(t, uint64(250000), call.GasLimit)
}

func TestBuildSwap_IncompletePayloadIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"tx": map[string]any{"to": "0x2222222222222222222222222222222222222222"},
		})
	}))
	defer server.Close()

	c := NewAggregationClient(server.URL, "")
	req := testRequest()
	req.DestChainID = 1

	_, err := c.BuildSwap(context.Background(), req)
	require.Error(t, err)
}
