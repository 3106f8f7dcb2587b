package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Venues have renamed their destination-amount field more than once, and
// two of them nest it inside a quote object. Extraction is an ordered
// list of named probes; the first hit wins, and no hit is a hard error
// so a venue contract change surfaces instead of being masked.
type amountExtractor struct {
	name    string
	extract func(payload map[string]any) (string, bool)
}

var destAmountExtractors = []amountExtractor{
	{"dstAmount", topLevelField("dstAmount")},
	{"toAmount", topLevelField("toAmount")},
	{"toTokenAmount", topLevelField("toTokenAmount")},
	{"amountOut", topLevelField("amountOut")},
	{"quote.dstTokenAmount", nestedField("quote", "dstTokenAmount")},
	{"quote.amountOut", nestedField("quote", "amountOut")},
}

// ExtractDestAmount probes a venue quote payload for the estimated
// destination amount. Absence is an error, never a placeholder.
func ExtractDestAmount(payload map[string]any) (string, error) {
	tried := make([]string, 0, len(destAmountExtractors))
	for _, ex := range destAmountExtractors {
		if value, ok := ex.extract(payload); ok {
			return value, nil
		}
		tried = append(tried, ex.name)
	}
	return "", fmt.Errorf("no destination amount in venue response (tried %s)", strings.Join(tried, ", "))
}

func topLevelField(key string) func(map[string]any) (string, bool) {
	return func(payload map[string]any) (string, bool) {
		return stringValue(payload[key])
	}
}

func nestedField(outer, inner string) func(map[string]any) (string, bool) {
	return func(payload map[string]any) (string, bool) {
		nested, ok := payload[outer].(map[string]any)
		if !ok {
			return "", false
		}
		return stringValue(nested[inner])
	}
}

// stringValue accepts the two encodings venues use for amounts: a decimal
// string or a bare JSON number.
func stringValue(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, value != ""
	case json.Number:
		return value.String(), true
	}
	return "", false
}
