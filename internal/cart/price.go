package cart

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CoercePrice normalizes the loosely typed price field found on product
// documents to a non-negative amount. Numbers pass through, numeric strings
// are parsed, anything else counts as zero. This is the only place price
// coercion happens; nothing downstream deals with raw price values.
func CoercePrice(v any) float64 {
	var price float64

	switch p := v.(type) {
	case nil:
		return 0
	case float64:
		price = p
	case float32:
		price = float64(p)
	case int:
		price = float64(p)
	case int32:
		price = float64(p)
	case int64:
		price = float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0
		}
		price = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0
		}
		price = f
	default:
		return 0
	}

	if price < 0 {
		return 0
	}
	return price
}
