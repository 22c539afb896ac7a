package types

// GroupRow is the common shape every grouping endpoint returns. The wire
// names mirror the dashboard's existing API contract, so the grouping key
// serializes as "_id".
type GroupRow struct {
	Key           string   `gorm:"column:key" json:"_id"`
	Count         int      `gorm:"column:count" json:"count,omitempty"`
	AvgIntensity  *float64 `gorm:"column:avg_intensity" json:"avgIntensity,omitempty"`
	AvgLikelihood *float64 `gorm:"column:avg_likelihood" json:"avgLikelihood,omitempty"`
	AvgRelevance  *float64 `gorm:"column:avg_relevance" json:"avgRelevance,omitempty"`
	Sum           *float64 `gorm:"column:total" json:"totalIntensity,omitempty"`
}

// KeyCount is one inner row of a cross-tabulation.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CrossTabRow is one outer group of a two-level grouping, inner rows sorted
// descending by count.
type CrossTabRow struct {
	Key   string     `json:"_id"`
	Inner []KeyCount `json:"rows"`
}

// SectorCount and RegionSectors keep the sector-by-region endpoint's
// historical field names.
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

type RegionSectors struct {
	Region  string        `json:"_id"`
	Sectors []SectorCount `json:"sectors"`
}

// RiskRow is one ranked topic. RiskScore averages the per-record product of
// the three metrics; it is not the product of the three averages.
type RiskRow struct {
	Topic         string  `gorm:"column:key" json:"_id"`
	AvgIntensity  float64 `gorm:"column:avg_intensity" json:"avgIntensity"`
	AvgLikelihood float64 `gorm:"column:avg_likelihood" json:"avgLikelihood"`
	AvgRelevance  float64 `gorm:"column:avg_relevance" json:"avgRelevance"`
	RiskScore     float64 `gorm:"column:risk_score" json:"riskScore"`
}

// ScatterPoint is one point of the intensity/relevance cloud.
type ScatterPoint struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Topic   string  `json:"topic"`
	Country string  `json:"country"`
}

// TopRecord is one row of a numeric top-k ranking.
type TopRecord struct {
	Topic      string  `json:"topic"`
	Country    string  `json:"country"`
	Value      float64 `json:"value"`
	Intensity  float64 `json:"intensity"`
	Likelihood float64 `json:"likelihood"`
	Relevance  float64 `json:"relevance"`
}

// CorrelationMatrix holds the three pairwise Pearson coefficients, rounded
// to three decimals.
type CorrelationMatrix struct {
	IntensityRelevance  float64 `json:"intensityRelevance"`
	IntensityLikelihood float64 `json:"intensityLikelihood"`
	RelevanceLikelihood float64 `json:"relevanceLikelihood"`
}

// KPIs is the dashboard headline block.
type KPIs struct {
	TotalRecords   int     `json:"totalRecords"`
	AvgIntensity   float64 `json:"avgIntensity"`
	AvgLikelihood  float64 `json:"avgLikelihood"`
	AvgRelevance   float64 `json:"avgRelevance"`
	TotalTopics    int     `json:"totalTopics"`
	TotalCountries int     `json:"totalCountries"`
	TotalSources   int     `json:"totalSources"`
}

// MissingCensus maps "missing_<field>" counters plus "total" to counts.
type MissingCensus map[string]int

// RecordPage is the paged listing envelope.
type RecordPage struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
	Data  []Record `json:"data"`
}

// MetricRow is the raw-value projection the correlation and scatter charts
// consume. Values stay uncoerced strings, as the dataset stores them.
type MetricRow struct {
	Intensity  string `json:"intensity"`
	Relevance  string `json:"relevance"`
	Likelihood string `json:"likelihood,omitempty"`
}

// RiskPoint is the raw projection behind the likelihood/intensity scatter
// and the risk matrix.
type RiskPoint struct {
	Intensity  string `json:"intensity"`
	Likelihood string `json:"likelihood"`
	Topic      string `json:"topic"`
	Country    string `json:"country"`
}

// Insight is the JSON-serializable aggregate bundle handed to the narrative
// generator (after compression) or returned directly to API consumers.
type Insight map[string]any
