package types

// FieldKind classifies a dataset field once, statically, instead of
// re-inferring "looks numeric" from whatever sample a request happens to
// fetch. Sparsely populated fields made that inference flappy.
type FieldKind int

const (
	FieldUnknown FieldKind = iota
	FieldCategorical
	FieldNumeric
)

var fieldKinds = map[string]FieldKind{
	"intensity":  FieldNumeric,
	"likelihood": FieldNumeric,
	"relevance":  FieldNumeric,
	"impact":     FieldNumeric,
	"end_year":   FieldNumeric,
	"start_year": FieldNumeric,

	"topic":     FieldCategorical,
	"sector":    FieldCategorical,
	"region":    FieldCategorical,
	"country":   FieldCategorical,
	"city":      FieldCategorical,
	"pestle":    FieldCategorical,
	"source":    FieldCategorical,
	"swot":      FieldCategorical,
	"title":     FieldCategorical,
	"insight":   FieldCategorical,
	"url":       FieldCategorical,
	"added":     FieldCategorical,
	"published": FieldCategorical,
}

func KindOf(field string) FieldKind {
	if k, ok := fieldKinds[field]; ok {
		return k
	}
	return FieldUnknown
}

// CategoricalFilterFields are the multi-select filters the dashboard exposes.
// "swot" is accepted even though not every dataset populates it; the
// constraint simply matches nothing extra when the column is empty.
var CategoricalFilterFields = []string{
	"topic", "sector", "region", "country", "city", "pestle", "source", "swot",
}

// CensusFields are the columns the data-quality report counts blanks for.
var CensusFields = []string{
	"intensity", "likelihood", "relevance", "topic", "sector", "region",
	"country", "pestle", "source", "start_year", "end_year",
}
