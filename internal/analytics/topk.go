package analytics

import (
	"sort"
	"strconv"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

// TopByField ranks records by a numeric field and returns the top n, each
// annotated with topic, country, the ranked value, and the three core
// metrics. For categorical fields it degrades to a GroupBy distribution and
// returns that instead; exactly one of the two results is non-nil.
func TopByField(records []types.Record, field string, n int) ([]types.TopRecord, []types.KeyCount) {
	if n <= 0 {
		n = 10
	}
	if !numericField(field, records) {
		return nil, GroupBy(records, field, n)
	}

	tops := make([]types.TopRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		tops = append(tops, types.TopRecord{
			Topic:      NormalizeKey(r.Topic),
			Country:    NormalizeKey(r.Country),
			Value:      SafeNumber(r.Field(field)),
			Intensity:  SafeNumber(r.Intensity),
			Likelihood: SafeNumber(r.Likelihood),
			Relevance:  SafeNumber(r.Relevance),
		})
	}
	sort.SliceStable(tops, func(i, j int) bool {
		return tops[i].Value > tops[j].Value
	})
	if len(tops) > n {
		tops = tops[:n]
	}
	return tops, nil
}

func numericField(field string, records []types.Record) bool {
	switch types.KindOf(field) {
	case types.FieldNumeric:
		return true
	case types.FieldCategorical:
		return false
	}
	// Unknown field: fall back to sampling the values themselves.
	sawValue := false
	for i := range records {
		v := records[i].Field(field)
		if v == "" {
			continue
		}
		sawValue = true
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return sawValue
}

// ScatterProjection maps records onto the intensity/relevance plane with
// likelihood as point size. Points where both coordinates coerce to zero are
// dropped: those are the all-missing rows, and plotting them just piles a
// blob on the origin.
func ScatterProjection(records []types.Record) []types.ScatterPoint {
	points := make([]types.ScatterPoint, 0, len(records))
	for i := range records {
		r := &records[i]
		x := SafeNumber(r.Intensity)
		y := SafeNumber(r.Relevance)
		if x == 0 && y == 0 {
			continue
		}
		points = append(points, types.ScatterPoint{
			X:       x,
			Y:       y,
			Size:    SafeNumber(r.Likelihood),
			Topic:   NormalizeKey(r.Topic),
			Country: NormalizeKey(r.Country),
		})
	}
	return points
}
