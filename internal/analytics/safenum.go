package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SafeNumber is the single numeric coercion used everywhere a record field
// is read as a number: nil, blanks, and non-numeric text all become 0, and
// NaN/Inf never escape. Substituting 0 biases sparse averages low; that is
// the documented behavior of the dataset's consumers, so every mean in the
// engine inherits it on purpose.
func SafeNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(x)
	case float32:
		return finiteOrZero(float64(x))
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return parseOrZero(x.String())
	case string:
		return parseOrZero(x)
	case *float64:
		if x == nil {
			return 0
		}
		return finiteOrZero(*x)
	}
	return 0
}

func parseOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round keeps stored values at a fixed decimal precision: correlations use
// three places, averages two.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
