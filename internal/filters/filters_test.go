package filters

import (
	"net/url"
	"testing"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

func TestBuildSplitsCategoricalSelections(t *testing.T) {
	p := Build(Selections{"sector": "Energy,Retail", "topic": "oil"})
	if got := p.In["sector"]; len(got) != 2 || got[0] != "Energy" || got[1] != "Retail" {
		t.Fatalf("sector set: %v", got)
	}
	if got := p.In["topic"]; len(got) != 1 || got[0] != "oil" {
		t.Fatalf("topic set: %v", got)
	}
	if p.EndYearMax != nil {
		t.Fatalf("end_year should be unconstrained")
	}
}

func TestBuildAbsentFieldsAreUnconstrained(t *testing.T) {
	p := Build(Selections{})
	if !p.IsEmpty() {
		t.Fatalf("empty selections must build an empty predicate: %+v", p)
	}
}

func TestBuildEndYearBound(t *testing.T) {
	p := Build(Selections{"end_year": "2020"})
	if p.EndYearMax == nil || *p.EndYearMax != 2020 {
		t.Fatalf("end_year bound: %v", p.EndYearMax)
	}
}

func TestBuildNonNumericEndYearCoercesToZero(t *testing.T) {
	// The documented quirk: a garbage year becomes "<= 0", excluding all
	// data, instead of being dropped.
	p := Build(Selections{"end_year": "soon"})
	if p.EndYearMax == nil || *p.EndYearMax != 0 {
		t.Fatalf("non-numeric end_year should coerce to 0, got %v", p.EndYearMax)
	}
}

func TestBuildAcceptsSwot(t *testing.T) {
	p := Build(Selections{"swot": "Strength"})
	if got := p.In["swot"]; len(got) != 1 || got[0] != "Strength" {
		t.Fatalf("swot set: %v", got)
	}
}

func TestFromValuesIgnoresUnrelatedParams(t *testing.T) {
	q := url.Values{}
	q.Set("sector", "Energy")
	q.Set("page", "3")
	q.Set("limit", "50")
	sel := FromValues(q)
	if len(sel) != 1 || sel["sector"] != "Energy" {
		t.Fatalf("selections: %v", sel)
	}
}

func TestMatches(t *testing.T) {
	year := 2018.0
	rec := types.Record{Sector: "Energy", Topic: "oil", EndYearNum: &year}

	p := Build(Selections{"sector": "Energy,Retail", "end_year": "2020"})
	if !p.Matches(&rec) {
		t.Fatalf("record should match %+v", p)
	}

	p = Build(Selections{"sector": "Retail"})
	if p.Matches(&rec) {
		t.Fatalf("sector mismatch should not match")
	}

	// Missing end_year never satisfies a range bound.
	noYear := types.Record{Sector: "Energy"}
	p = Build(Selections{"end_year": "2020"})
	if p.Matches(&noYear) {
		t.Fatalf("record without end_year should not match a bound")
	}
}
