package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/logger"
)

type memCache struct {
	store map[string][]byte
	sets  int
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (c *memCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = raw
	c.sets++
	return nil
}

func (c *memCache) Invalidate(ctx context.Context, prefix string) error { return nil }
func (c *memCache) Close() error                                        { return nil }

func TestListRecordsClampsPaging(t *testing.T) {
	svc := NewInsightService(logger.NewNop(), fixtureRepo(), nil)

	page, err := svc.ListRecords(context.Background(), nil, 0, -5)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if page.Page != 1 || page.Limit != defaultPageSize {
		t.Errorf("page=%d limit=%d, want 1/%d", page.Page, page.Limit, defaultPageSize)
	}
	if page.Total != 2 || len(page.Data) != 2 {
		t.Errorf("total=%d len=%d, want 2/2", page.Total, len(page.Data))
	}
}

func TestListRecordsAppliesFilters(t *testing.T) {
	svc := NewInsightService(logger.NewNop(), fixtureRepo(), nil)

	page, err := svc.ListRecords(context.Background(), filters.Selections{"end_year": "2019"}, 1, 10)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("total = %d, want 1 (only the 2018 record)", page.Total)
	}
}

func TestFilterOptionsCached(t *testing.T) {
	cache := newMemCache()
	svc := NewInsightService(logger.NewNop(), fixtureRepo(), cache)

	first, err := svc.FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("FilterOptions: %v", err)
	}
	if len(first["sectors"]) != 1 || first["sectors"][0] != "Energy" {
		t.Errorf("sectors = %v", first["sectors"])
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	second, err := svc.FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("FilterOptions (cached): %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d after cached read, want still 1", cache.sets)
	}
	if len(second) != len(first) {
		t.Errorf("cached payload shape differs: %d vs %d keys", len(second), len(first))
	}
}

func TestCorrelationMatrixFromWindow(t *testing.T) {
	svc := NewInsightService(logger.NewNop(), fixtureRepo(), nil)

	m, err := svc.CorrelationMatrix(context.Background(), nil)
	if err != nil {
		t.Fatalf("CorrelationMatrix: %v", err)
	}
	// Two records is below the n>=3 floor, so every coefficient is 0.
	if m.IntensityRelevance != 0 || m.IntensityLikelihood != 0 || m.RelevanceLikelihood != 0 {
		t.Errorf("matrix = %+v, want zeroes", m)
	}
}

func TestCorrelationDataProjectsRawValues(t *testing.T) {
	svc := NewInsightService(logger.NewNop(), fixtureRepo(), nil)

	rows, err := svc.CorrelationData(context.Background(), nil)
	if err != nil {
		t.Fatalf("CorrelationData: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Intensity != "4" || rows[0].Relevance != "3" || rows[0].Likelihood != "2" {
		t.Errorf("row 0 = %+v", rows[0])
	}
}

func TestKPIsCached(t *testing.T) {
	cache := newMemCache()
	svc := NewInsightService(logger.NewNop(), fixtureRepo(), cache)

	k, err := svc.KPIs(context.Background())
	if err != nil {
		t.Fatalf("KPIs: %v", err)
	}
	if k.TotalRecords != 2 {
		t.Errorf("totalRecords = %d", k.TotalRecords)
	}

	again, err := svc.KPIs(context.Background())
	if err != nil {
		t.Fatalf("KPIs (cached): %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
	if again != k {
		t.Errorf("cached KPIs differ: %+v vs %+v", again, k)
	}
}
