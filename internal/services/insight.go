package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marcusvane/insightdash-backend/internal/analytics"
	"github.com/marcusvane/insightdash-backend/internal/clients/redis"
	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/repos"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500

	// correlationWindow bounds how many rows the in-memory statistics pull
	// out of the store for one request.
	correlationWindow = 6000

	optionsCacheTTL = 10 * time.Minute
	kpisCacheTTL    = 5 * time.Minute
)

// filterOptionKeys maps each response key of the filter-options payload to
// the dataset field backing it.
var filterOptionKeys = map[string]string{
	"endYears":         "end_year",
	"startYears":       "start_year",
	"topics":           "topic",
	"sectors":          "sector",
	"regions":          "region",
	"countries":        "country",
	"cities":           "city",
	"pestles":          "pestle",
	"sources":          "source",
	"swots":            "swot",
	"insightTitles":    "title",
	"intensityValues":  "intensity",
	"likelihoodValues": "likelihood",
	"relevanceValues":  "relevance",
	"impactValues":     "impact",
	"addedDates":       "added",
	"publishedDates":   "published",
}

// InsightService backs every read endpoint of the dashboard API.
type InsightService interface {
	ListRecords(ctx context.Context, sel filters.Selections, page, limit int) (types.RecordPage, error)
	FilterOptions(ctx context.Context) (map[string][]string, error)

	CorrelationData(ctx context.Context, sel filters.Selections) ([]types.MetricRow, error)
	CorrelationMatrix(ctx context.Context, sel filters.Selections) (types.CorrelationMatrix, error)
	Scatter(ctx context.Context, sel filters.Selections) ([]types.ScatterPoint, error)

	RegionHeatmap(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error)
	SectorByRegion(ctx context.Context, sel filters.Selections) ([]types.RegionSectors, error)
	CountryStats(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error)
	PestleAnalysis(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error)

	HighRiskTopics(ctx context.Context, sel filters.Selections) ([]types.RiskRow, error)
	RiskPoints(ctx context.Context, sel filters.Selections) ([]types.RiskPoint, error)

	Distribution(ctx context.Context, field string, sel filters.Selections) ([]types.GroupRow, error)
	AverageBy(ctx context.Context, field, metric string, sel filters.Selections) ([]types.GroupRow, error)
	TopTopics(ctx context.Context, sel filters.Selections, limit int) ([]types.GroupRow, error)

	MissingData(ctx context.Context) (types.MissingCensus, error)
	KPIs(ctx context.Context) (types.KPIs, error)

	InsightsPerYear(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error)
	IntensityByYear(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error)
	RelevanceByYear(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error)
}

type insightService struct {
	log   *logger.Logger
	repo  repos.RecordRepo
	cache redis.Cache // nil when redis is not configured
}

func NewInsightService(log *logger.Logger, repo repos.RecordRepo, cache redis.Cache) InsightService {
	return &insightService{
		log:   log.With("service", "InsightService"),
		repo:  repo,
		cache: cache,
	}
}

func (s *insightService) ListRecords(ctx context.Context, sel filters.Selections, page, limit int) (types.RecordPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	pred := filters.Build(sel)

	data, err := s.repo.Find(ctx, pred, nil, limit, (page-1)*limit)
	if err != nil {
		return types.RecordPage{}, err
	}
	total, err := s.repo.Count(ctx, pred)
	if err != nil {
		return types.RecordPage{}, err
	}

	if data == nil {
		data = []types.Record{}
	}
	return types.RecordPage{Page: page, Limit: limit, Total: total, Data: data}, nil
}

func (s *insightService) FilterOptions(ctx context.Context) (map[string][]string, error) {
	const cacheKey = "filter-options"

	if s.cache != nil {
		var cached map[string][]string
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out := make(map[string][]string, len(filterOptionKeys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	type kv struct {
		key  string
		vals []string
	}
	results := make(chan kv, len(filterOptionKeys))

	for key, field := range filterOptionKeys {
		key, field := key, field
		g.Go(func() error {
			vals, err := s.repo.DistinctValues(gctx, field)
			if err != nil {
				return fmt.Errorf("filter options for %s: %w", field, err)
			}
			if vals == nil {
				vals = []string{}
			}
			results <- kv{key: key, vals: vals}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)
	for r := range results {
		out[r.key] = r.vals
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, out, optionsCacheTTL); err != nil {
			s.log.Warn("Filter options cache write failed", "error", err.Error())
		}
	}
	return out, nil
}

// metricWindow pulls the bounded raw-record window the in-memory statistics
// run over.
func (s *insightService) metricWindow(ctx context.Context, sel filters.Selections) ([]types.Record, error) {
	pred := filters.Build(sel)
	return s.repo.Find(ctx, pred, nil, correlationWindow, 0)
}

func (s *insightService) CorrelationData(ctx context.Context, sel filters.Selections) ([]types.MetricRow, error) {
	recs, err := s.metricWindow(ctx, sel)
	if err != nil {
		return nil, err
	}
	out := make([]types.MetricRow, 0, len(recs))
	for i := range recs {
		out = append(out, types.MetricRow{
			Intensity:  recs[i].Intensity,
			Relevance:  recs[i].Relevance,
			Likelihood: recs[i].Likelihood,
		})
	}
	return out, nil
}

func (s *insightService) CorrelationMatrix(ctx context.Context, sel filters.Selections) (types.CorrelationMatrix, error) {
	recs, err := s.metricWindow(ctx, sel)
	if err != nil {
		return types.CorrelationMatrix{}, err
	}
	return analytics.CorrelationMatrix(recs), nil
}

func (s *insightService) Scatter(ctx context.Context, sel filters.Selections) ([]types.ScatterPoint, error) {
	recs, err := s.metricWindow(ctx, sel)
	if err != nil {
		return nil, err
	}
	return analytics.ScatterProjection(recs), nil
}

func (s *insightService) RegionHeatmap(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "region",
		WithCount: true,
		Metrics:   []string{"intensity", "likelihood"},
	})
}

func (s *insightService) SectorByRegion(ctx context.Context, sel filters.Selections) ([]types.RegionSectors, error) {
	return s.repo.SectorByRegion(ctx, filters.Build(sel))
}

func (s *insightService) CountryStats(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "country",
		WithCount: true,
		Metrics:   []string{"intensity", "likelihood"},
	})
}

func (s *insightService) PestleAnalysis(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "pestle",
		WithCount: true,
		Metrics:   []string{"intensity", "likelihood", "relevance"},
	})
}

func (s *insightService) HighRiskTopics(ctx context.Context, sel filters.Selections) ([]types.RiskRow, error) {
	return s.repo.RankByRisk(ctx, filters.Build(sel))
}

func (s *insightService) RiskPoints(ctx context.Context, sel filters.Selections) ([]types.RiskPoint, error) {
	recs, err := s.metricWindow(ctx, sel)
	if err != nil {
		return nil, err
	}
	out := make([]types.RiskPoint, 0, len(recs))
	for i := range recs {
		out = append(out, types.RiskPoint{
			Intensity:  recs[i].Intensity,
			Likelihood: recs[i].Likelihood,
			Topic:      recs[i].Topic,
			Country:    recs[i].Country,
		})
	}
	return out, nil
}

// Distribution counts records per bucket of a categorical field, largest
// bucket first.
func (s *insightService) Distribution(ctx context.Context, field string, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     field,
		WithCount: true,
	})
}

// AverageBy ranks a field's buckets by the average of one metric.
func (s *insightService) AverageBy(ctx context.Context, field, metric string, sel filters.Selections) ([]types.GroupRow, error) {
	withCount := field != "topic" // the topic charts historically omit counts
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     field,
		WithCount: withCount,
		Metrics:   []string{metric},
		SortBy:    "avg:" + metric,
	})
}

func (s *insightService) TopTopics(ctx context.Context, sel filters.Selections, limit int) ([]types.GroupRow, error) {
	if limit < 1 {
		limit = 10
	}
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "topic",
		WithCount: true,
		Metrics:   []string{"intensity", "likelihood"},
		Limit:     limit,
	})
}

func (s *insightService) MissingData(ctx context.Context) (types.MissingCensus, error) {
	return s.repo.MissingCensus(ctx, types.CensusFields)
}

func (s *insightService) KPIs(ctx context.Context) (types.KPIs, error) {
	const cacheKey = "summary-kpis"

	if s.cache != nil {
		var cached types.KPIs
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	kpis, err := s.repo.SummaryKPIs(ctx)
	if err != nil {
		return types.KPIs{}, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, kpis, kpisCacheTTL); err != nil {
			s.log.Warn("KPI cache write failed", "error", err.Error())
		}
	}
	return kpis, nil
}

func (s *insightService) InsightsPerYear(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "end_year",
		WithCount: true,
		SortBy:    "key",
	})
}

func (s *insightService) IntensityByYear(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "end_year",
		Metrics:   []string{"intensity"},
		SumMetric: "intensity",
		SortBy:    "key",
	})
}

func (s *insightService) RelevanceByYear(ctx context.Context, sel filters.Selections) ([]types.GroupRow, error) {
	return s.repo.GroupAndAggregate(ctx, filters.Build(sel), repos.GroupSpec{
		Field:     "end_year",
		Metrics:   []string{"relevance"},
		SortBy:    "key",
	})
}
