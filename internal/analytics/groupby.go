package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

// UnknownKey is the sentinel bucket for missing grouping values. Null,
// empty, and whitespace-only raw values must all land here no matter which
// endpoint does the grouping.
const UnknownKey = "Unknown"

// NormalizeKey folds a raw grouping value into its canonical bucket key.
func NormalizeKey(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UnknownKey
	}
	return s
}

// AvgGroup is one row of an average-by-key reduction.
type AvgGroup struct {
	Key   string  `json:"key"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// GroupBy counts records per normalized key of field. Sort order follows the
// field's declared kind: numeric fields ascend by key value (Unknown last),
// categorical fields descend by count. Fields outside the schema fall back
// to the value heuristic: ascend numerically only if every key except
// Unknown parses as a number. limit <= 0 means no truncation.
func GroupBy(records []types.Record, field string, limit int) []types.KeyCount {
	counts := map[string]int{}
	order := []string{}
	for i := range records {
		k := NormalizeKey(records[i].Field(field))
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	rows := make([]types.KeyCount, 0, len(order))
	for _, k := range order {
		rows = append(rows, types.KeyCount{Key: k, Count: counts[k]})
	}

	if sortNumerically(field, rows) {
		sort.SliceStable(rows, func(i, j int) bool {
			a, aUnknown := keyValue(rows[i].Key)
			b, bUnknown := keyValue(rows[j].Key)
			if aUnknown != bUnknown {
				return bUnknown
			}
			return a < b
		})
	} else {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Count > rows[j].Count
		})
	}

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func sortNumerically(field string, rows []types.KeyCount) bool {
	switch types.KindOf(field) {
	case types.FieldNumeric:
		return true
	case types.FieldCategorical:
		return false
	}
	for _, r := range rows {
		if r.Key == UnknownKey {
			continue
		}
		if _, err := strconv.ParseFloat(r.Key, 64); err != nil {
			return false
		}
	}
	return true
}

func keyValue(key string) (v float64, unknown bool) {
	if key == UnknownKey {
		return 0, true
	}
	f, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return 0, true
	}
	return f, false
}

// AverageByGroup averages the coerced valueField per normalized key of
// groupField, rounded to two decimals, sorted by average descending with
// count as the tiebreak.
func AverageByGroup(records []types.Record, groupField, valueField string) []AvgGroup {
	type acc struct {
		sum   float64
		count int
	}
	sums := map[string]*acc{}
	order := []string{}
	for i := range records {
		k := NormalizeKey(records[i].Field(groupField))
		a, seen := sums[k]
		if !seen {
			a = &acc{}
			sums[k] = a
			order = append(order, k)
		}
		a.sum += SafeNumber(records[i].Field(valueField))
		a.count++
	}

	rows := make([]AvgGroup, 0, len(order))
	for _, k := range order {
		a := sums[k]
		rows = append(rows, AvgGroup{
			Key:   k,
			Avg:   Round(a.sum/float64(a.count), 2),
			Count: a.count,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Avg != rows[j].Avg {
			return rows[i].Avg > rows[j].Avg
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// CrossGroup nests keyB counts under each keyA bucket: outer groups ascend
// by key, inner lists descend by count.
func CrossGroup(records []types.Record, keyA, keyB string) []types.CrossTabRow {
	outer := map[string]map[string]int{}
	for i := range records {
		a := NormalizeKey(records[i].Field(keyA))
		b := NormalizeKey(records[i].Field(keyB))
		if outer[a] == nil {
			outer[a] = map[string]int{}
		}
		outer[a][b]++
	}

	keys := make([]string, 0, len(outer))
	for k := range outer {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]types.CrossTabRow, 0, len(keys))
	for _, a := range keys {
		inner := make([]types.KeyCount, 0, len(outer[a]))
		for b, c := range outer[a] {
			inner = append(inner, types.KeyCount{Key: b, Count: c})
		}
		sort.SliceStable(inner, func(i, j int) bool {
			if inner[i].Count != inner[j].Count {
				return inner[i].Count > inner[j].Count
			}
			return inner[i].Key < inner[j].Key
		})
		rows = append(rows, types.CrossTabRow{Key: a, Inner: inner})
	}
	return rows
}

// MissingCensus counts, per named field, records whose raw value is blank.
// Only null/empty count as missing: a literal "0" or "false" is present
// data. The report also carries the total record count.
func MissingCensus(records []types.Record, fields []string) types.MissingCensus {
	out := types.MissingCensus{}
	for _, f := range fields {
		out["missing_"+f] = 0
	}
	for i := range records {
		for _, f := range fields {
			if records[i].Field(f) == "" {
				out["missing_"+f]++
			}
		}
	}
	out["total"] = len(records)
	return out
}
