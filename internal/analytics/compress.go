package analytics

import (
	"reflect"
	"sort"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

// DefaultMaxItemsPerField bounds each list or mapping inside an insight
// before it is serialized into a prompt.
const DefaultMaxItemsPerField = 15

// Compress bounds every oversized top-level field of an insight: ordered
// lists are cut to their first maxItems entries (upstream aggregation
// already ranked them, so truncation keeps the significant head and the
// order is never touched), keyed mappings are cut to maxItems keys, and
// scalars pass through unchanged. The input is not mutated.
func Compress(insight types.Insight, maxItems int) types.Insight {
	if maxItems <= 0 {
		maxItems = DefaultMaxItemsPerField
	}
	out := make(types.Insight, len(insight))
	for field, value := range insight {
		out[field] = compressValue(value, maxItems)
	}
	return out
}

func compressValue(value any, maxItems int) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() <= maxItems {
			return value
		}
		return rv.Slice(0, maxItems).Interface()
	case reflect.Map:
		if rv.Len() <= maxItems {
			return value
		}
		// Go maps have no stable iteration order, so the retained
		// "first" keys are the lexicographically smallest ones. That
		// keeps compression deterministic across requests.
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		trimmed := reflect.MakeMapWithSize(rv.Type(), maxItems)
		for _, k := range keys[:maxItems] {
			trimmed.SetMapIndex(k, rv.MapIndex(k))
		}
		return trimmed.Interface()
	}
	return value
}
