package repos

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

// GroupSpec parameterizes one grouped aggregation: which field buckets the
// records, which metric averages to compute, and how to order the result.
type GroupSpec struct {
	Field     string
	WithCount bool
	Metrics   []string // averages over "intensity", "likelihood", "relevance"
	SumMetric string   // optional running total (the per-year intensity chart)
	SortBy    string   // "count", "key", "avg:<metric>"; default "count"
	Limit     int
}

type RecordRepo interface {
	Find(ctx context.Context, pred filters.Predicate, projection []string, limit, offset int) ([]types.Record, error)
	Count(ctx context.Context, pred filters.Predicate) (int64, error)
	DistinctValues(ctx context.Context, field string) ([]string, error)
	GroupAndAggregate(ctx context.Context, pred filters.Predicate, spec GroupSpec) ([]types.GroupRow, error)
	SectorByRegion(ctx context.Context, pred filters.Predicate) ([]types.RegionSectors, error)
	RankByRisk(ctx context.Context, pred filters.Predicate) ([]types.RiskRow, error)
	MissingCensus(ctx context.Context, fields []string) (types.MissingCensus, error)
	SummaryKPIs(ctx context.Context) (types.KPIs, error)
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	return &recordRepo{db: db, log: baseLog.With("repo", "RecordRepo")}
}

func (r *recordRepo) Find(ctx context.Context, pred filters.Predicate, projection []string, limit, offset int) ([]types.Record, error) {
	q := pred.Apply(r.db.WithContext(ctx).Model(&types.Record{}))
	if len(projection) > 0 {
		q = q.Select(projection)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var out []types.Record
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find records: %w", err)
	}
	return out, nil
}

func (r *recordRepo) Count(ctx context.Context, pred filters.Predicate) (int64, error) {
	var n int64
	q := pred.Apply(r.db.WithContext(ctx).Model(&types.Record{}))
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (r *recordRepo) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if types.KindOf(field) == types.FieldUnknown {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	var out []string
	err := r.db.WithContext(ctx).
		Model(&types.Record{}).
		Distinct(field).
		Where(field+" IS NOT NULL AND "+field+" <> ''").
		Order(field + " ASC").
		Pluck(field, &out).Error
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}
	return out, nil
}

func (r *recordRepo) GroupAndAggregate(ctx context.Context, pred filters.Predicate, spec GroupSpec) ([]types.GroupRow, error) {
	if types.KindOf(spec.Field) == types.FieldUnknown {
		return nil, fmt.Errorf("unknown grouping field %q", spec.Field)
	}

	p := NewPipeline(spec.Field).Match(pred)
	if spec.WithCount {
		p.Count()
	}
	for _, m := range spec.Metrics {
		p.Avg(m, avgAlias(m))
	}
	if spec.SumMetric != "" {
		p.Sum(spec.SumMetric, "total")
	}
	order, err := orderClause(spec)
	if err != nil {
		return nil, err
	}
	p.Sort(order)
	if spec.Limit > 0 {
		p.Limit(spec.Limit)
	}

	var rows []types.GroupRow
	if err := p.Run(ctx, r.db, &rows); err != nil {
		return nil, fmt.Errorf("group by %s: %w", spec.Field, err)
	}
	return rows, nil
}

func avgAlias(metric string) string {
	return "avg_" + metric
}

// orderClause whitelists the sort expressions the endpoints use; SortBy
// never carries caller input.
func orderClause(spec GroupSpec) (string, error) {
	switch {
	case spec.SortBy == "" || spec.SortBy == "count":
		return "count DESC", nil
	case spec.SortBy == "key":
		return "key ASC", nil
	case strings.HasPrefix(spec.SortBy, "avg:"):
		metric := strings.TrimPrefix(spec.SortBy, "avg:")
		for _, m := range spec.Metrics {
			if m == metric {
				return avgAlias(metric) + " DESC", nil
			}
		}
		return "", fmt.Errorf("sort metric %q not among computed averages", metric)
	}
	return "", fmt.Errorf("unsupported sort %q", spec.SortBy)
}

// SectorByRegion groups by the (region, sector) composite and collapses to
// region -> sector counts: outer groups ascend by region, inner lists
// descend by count. The collapse happens in-process; two-level grouped
// projections aren't portable SQL.
func (r *recordRepo) SectorByRegion(ctx context.Context, pred filters.Predicate) ([]types.RegionSectors, error) {
	var pairs []struct {
		Region string `gorm:"column:region_key"`
		Sector string `gorm:"column:sector_key"`
		Count  int    `gorm:"column:count"`
	}
	q := pred.Apply(r.db.WithContext(ctx).Model(&types.Record{})).
		Select(GroupKeyExpr("region") + " AS region_key, " + GroupKeyExpr("sector") + " AS sector_key, COUNT(*) AS count").
		Group(GroupKeyExpr("region")).
		Group(GroupKeyExpr("sector")).
		Order("region_key ASC, count DESC")
	if err := q.Scan(&pairs).Error; err != nil {
		return nil, fmt.Errorf("sector by region: %w", err)
	}

	out := []types.RegionSectors{}
	for _, p := range pairs {
		if len(out) == 0 || out[len(out)-1].Region != p.Region {
			out = append(out, types.RegionSectors{Region: p.Region})
		}
		last := &out[len(out)-1]
		last.Sectors = append(last.Sectors, types.SectorCount{Sector: p.Sector, Count: p.Count})
	}
	return out, nil
}

// RankByRisk averages the per-record intensity*likelihood*relevance product
// per topic and returns the top 15. Multiplying before averaging preserves
// per-record covariance; the three avg columns are reported alongside but
// their product is NOT the risk score.
func (r *recordRepo) RankByRisk(ctx context.Context, pred filters.Predicate) ([]types.RiskRow, error) {
	var rows []types.RiskRow
	p := NewPipeline("topic").
		Match(pred).
		Avg("intensity", "avg_intensity").
		Avg("likelihood", "avg_likelihood").
		Avg("relevance", "avg_relevance").
		AvgExpr("intensity_num * likelihood_num * relevance_num", "risk_score").
		Sort("risk_score DESC").
		Limit(15)
	if err := p.Run(ctx, r.db, &rows); err != nil {
		return nil, fmt.Errorf("rank by risk: %w", err)
	}
	return rows, nil
}

// MissingCensus is a data-quality report over the whole collection, never
// filtered. A field counts as missing when its raw value is NULL or the
// empty string; "0" and "false" are data.
func (r *recordRepo) MissingCensus(ctx context.Context, fields []string) (types.MissingCensus, error) {
	selects := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		if types.KindOf(f) == types.FieldUnknown {
			return nil, fmt.Errorf("unknown census field %q", f)
		}
		selects = append(selects,
			fmt.Sprintf("SUM(CASE WHEN %s IS NULL OR %s = '' THEN 1 ELSE 0 END) AS missing_%s", f, f, f))
	}
	selects = append(selects, "COUNT(*) AS total")

	row := map[string]any{}
	err := r.db.WithContext(ctx).
		Model(&types.Record{}).
		Select(strings.Join(selects, ", ")).
		Take(&row).Error
	if err != nil {
		return nil, fmt.Errorf("missing census: %w", err)
	}

	out := types.MissingCensus{}
	for k, v := range row {
		out[k] = asInt(v)
	}
	return out, nil
}

func asInt(v any) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int32:
		return int(x)
	case int:
		return x
	case float64:
		return int(x)
	case []byte:
		return asIntString(string(x))
	case string:
		return asIntString(x)
	}
	return 0
}

func asIntString(s string) int {
	n := 0
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0
	}
	return n
}

// SummaryKPIs computes the dashboard headline block in one pass: totals,
// global averages over the coerced metrics, and distinct non-blank counts
// for topics, countries, and sources.
func (r *recordRepo) SummaryKPIs(ctx context.Context) (types.KPIs, error) {
	var dest struct {
		TotalRecords   int     `gorm:"column:total_records"`
		AvgIntensity   float64 `gorm:"column:avg_intensity"`
		AvgLikelihood  float64 `gorm:"column:avg_likelihood"`
		AvgRelevance   float64 `gorm:"column:avg_relevance"`
		TotalTopics    int     `gorm:"column:total_topics"`
		TotalCountries int     `gorm:"column:total_countries"`
		TotalSources   int     `gorm:"column:total_sources"`
	}
	err := r.db.WithContext(ctx).
		Model(&types.Record{}).
		Select(strings.Join([]string{
			"COUNT(*) AS total_records",
			"COALESCE(AVG(intensity_num), 0) AS avg_intensity",
			"COALESCE(AVG(likelihood_num), 0) AS avg_likelihood",
			"COALESCE(AVG(relevance_num), 0) AS avg_relevance",
			"COUNT(DISTINCT NULLIF(TRIM(topic), '')) AS total_topics",
			"COUNT(DISTINCT NULLIF(TRIM(country), '')) AS total_countries",
			"COUNT(DISTINCT NULLIF(TRIM(source), '')) AS total_sources",
		}, ", ")).
		Take(&dest).Error
	if err != nil {
		return types.KPIs{}, fmt.Errorf("summary kpis: %w", err)
	}
	return types.KPIs{
		TotalRecords:   dest.TotalRecords,
		AvgIntensity:   dest.AvgIntensity,
		AvgLikelihood:  dest.AvgLikelihood,
		AvgRelevance:   dest.AvgRelevance,
		TotalTopics:    dest.TotalTopics,
		TotalCountries: dest.TotalCountries,
		TotalSources:   dest.TotalSources,
	}, nil
}
