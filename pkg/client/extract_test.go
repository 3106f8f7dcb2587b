package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDestAmount_FieldVariants(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"dstAmount", map[string]any{"dstAmount": "123"}, "123"},
		{"toAmount", map[string]any{"toAmount": "456"}, "456"},
		{"toTokenAmount", map[string]any{"toTokenAmount": "789"}, "789"},
		{"amountOut", map[string]any{"amountOut": "42"}, "42"},
		{"nested dstTokenAmount", map[string]any{"quote": map[string]any{"dstTokenAmount": "77"}}, "77"},
		{"nested amountOut", map[string]any{"quote": map[string]any{"amountOut": "88"}}, "88"},
		{"json number", map[string]any{"dstAmount": json.Number("1000000")}, "1000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractDestAmount(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractDestAmount_PriorityOrder(t *testing.T) {
	payload := map[string]any{
		"dstAmount": "first",
		"toAmount":  "second",
	}
	got, err := ExtractDestAmount(payload)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestExtractDestAmount_NoMatchIsHardError(t *testing.T) {
	cases := []map[string]any{
		{},
		{"unrelated": "1"},
		{"dstAmount": ""},
		{"dstAmount": true},
	}
	for _, payload := range cases {
		_, err := ExtractDestAmount(payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no destination amount")
	}
}
