package filters

import (
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/marcusvane/insightdash-backend/internal/analytics"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

// Selections holds the raw filter inputs of one request: filter name to
// comma-joined values for the categorical multi-selects, or a single numeric
// string for end_year. Absent keys mean "no constraint".
type Selections map[string]string

// FromValues lifts the recognized filter parameters out of a query string,
// ignoring everything else (page, limit, unrelated params).
func FromValues(q url.Values) Selections {
	sel := Selections{}
	for _, field := range types.CategoricalFilterFields {
		if v := q.Get(field); v != "" {
			sel[field] = v
		}
	}
	if v := q.Get("end_year"); v != "" {
		sel["end_year"] = v
	}
	return sel
}

// Predicate is the normalized constraint set applied to the record store.
// Multi-value selections OR within a field; fields AND together.
type Predicate struct {
	In         map[string][]string
	EndYearMax *float64
}

// Build translates filter selections into a Predicate. Categorical values
// split on comma into membership sets. A non-numeric end_year coerces to 0,
// which makes the constraint "<= 0" and matches nothing — a long-documented
// quirk of the dashboard that callers rely on being loud rather than a
// silently dropped filter.
func Build(sel Selections) Predicate {
	p := Predicate{In: map[string][]string{}}
	for _, field := range types.CategoricalFilterFields {
		raw, ok := sel[field]
		if !ok || raw == "" {
			continue
		}
		p.In[field] = strings.Split(raw, ",")
	}
	if raw, ok := sel["end_year"]; ok && raw != "" {
		bound := analytics.SafeNumber(raw)
		p.EndYearMax = &bound
	}
	return p
}

// IsEmpty reports whether the predicate constrains anything at all.
func (p Predicate) IsEmpty() bool {
	return len(p.In) == 0 && p.EndYearMax == nil
}

// Apply renders the predicate as WHERE clauses on a gorm query. The
// end_year bound compares against the coerced column, so records without a
// parseable end_year never match a range constraint — same behavior as the
// store the dashboard grew up on.
func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	for _, field := range types.CategoricalFilterFields {
		if vals, ok := p.In[field]; ok && len(vals) > 0 {
			db = db.Where(field+" IN ?", vals)
		}
	}
	if p.EndYearMax != nil {
		db = db.Where("end_year_num <= ?", *p.EndYearMax)
	}
	return db
}

// Matches evaluates the predicate against one record in memory. Used by
// reducers that already hold a fetched window.
func (p Predicate) Matches(r *types.Record) bool {
	for field, vals := range p.In {
		got := r.Field(field)
		found := false
		for _, v := range vals {
			if got == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if p.EndYearMax != nil {
		if r.EndYearNum == nil || *r.EndYearNum > *p.EndYearMax {
			return false
		}
	}
	return true
}
