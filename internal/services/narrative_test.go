package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/marcusvane/insightdash-backend/internal/analytics"
	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/repos"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

type stubRepo struct {
	records []types.Record
	kpis    types.KPIs
	risk    []types.RiskRow

	failWith error
}

func (s *stubRepo) Find(ctx context.Context, pred filters.Predicate, projection []string, limit, offset int) ([]types.Record, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]types.Record, 0, len(s.records))
	for i := range s.records {
		if pred.Matches(&s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubRepo) Count(ctx context.Context, pred filters.Predicate) (int64, error) {
	recs, err := s.Find(ctx, pred, nil, 0, 0)
	return int64(len(recs)), err
}

func (s *stubRepo) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	seen := map[string]bool{}
	var out []string
	for i := range s.records {
		v := s.records[i].Field(field)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubRepo) GroupAndAggregate(ctx context.Context, pred filters.Predicate, spec repos.GroupSpec) ([]types.GroupRow, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return []types.GroupRow{{Key: "Energy", Count: 2}}, nil
}

func (s *stubRepo) SectorByRegion(ctx context.Context, pred filters.Predicate) ([]types.RegionSectors, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return nil, nil
}

func (s *stubRepo) RankByRisk(ctx context.Context, pred filters.Predicate) ([]types.RiskRow, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.risk, nil
}

func (s *stubRepo) MissingCensus(ctx context.Context, fields []string) (types.MissingCensus, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return types.MissingCensus{"total": len(s.records)}, nil
}

func (s *stubRepo) SummaryKPIs(ctx context.Context) (types.KPIs, error) {
	if s.failWith != nil {
		return types.KPIs{}, s.failWith
	}
	return s.kpis, nil
}

type stubLLM struct {
	text     string
	err      error
	lastUser string
}

func (s *stubLLM) GenerateText(ctx context.Context, system, user string) (string, error) {
	s.lastUser = user
	return s.text, s.err
}

func (s *stubLLM) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (map[string]any, error) {
	return nil, errors.New("not used")
}

func year(v float64) *float64 { return &v }

func fixtureRepo() *stubRepo {
	return &stubRepo{
		records: []types.Record{
			{EndYear: "2020", EndYearNum: year(2020), Sector: "Energy", Topic: "gas", Intensity: "4", Likelihood: "2", Relevance: "3"},
			{EndYear: "2018", EndYearNum: year(2018), Sector: "Energy", Topic: "oil", Intensity: "2", Likelihood: "4", Relevance: "1"},
		},
		kpis: types.KPIs{TotalRecords: 2, AvgIntensity: 3},
		risk: []types.RiskRow{{Topic: "gas", RiskScore: 24}},
	}
}

func TestSummaryIncludesNarrative(t *testing.T) {
	llm := &stubLLM{text: "Energy dominates the dataset."}
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), llm)

	out, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if out["narrative"] != "Energy dominates the dataset." {
		t.Errorf("narrative = %v", out["narrative"])
	}
	if _, ok := out["narrative_error"]; ok {
		t.Errorf("unexpected narrative_error: %v", out["narrative_error"])
	}
	if out["kpis"].(types.KPIs).TotalRecords != 2 {
		t.Errorf("kpis missing from insight: %v", out["kpis"])
	}
	if !strings.Contains(llm.lastUser, "highRiskTopics") {
		t.Errorf("prompt missing aggregates: %q", llm.lastUser)
	}
}

func TestSummaryBundlesWindowStatistics(t *testing.T) {
	llm := &stubLLM{text: "ok"}
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), llm)

	out, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	tops, ok := out["topIntensityRecords"].([]types.TopRecord)
	if !ok || len(tops) != 2 {
		t.Fatalf("topIntensityRecords = %v", out["topIntensityRecords"])
	}
	if tops[0].Topic != "gas" || tops[0].Value != 4 {
		t.Errorf("top record = %+v, want gas at intensity 4", tops[0])
	}

	rel, ok := out["relevanceBySector"].([]analytics.AvgGroup)
	if !ok || len(rel) != 1 {
		t.Fatalf("relevanceBySector = %v", out["relevanceBySector"])
	}
	if rel[0].Key != "Energy" || rel[0].Avg != 2 || rel[0].Count != 2 {
		t.Errorf("relevance row = %+v", rel[0])
	}

	if !strings.Contains(llm.lastUser, "topIntensityRecords") {
		t.Errorf("prompt missing window statistics: %q", llm.lastUser)
	}
}

func TestSummaryDegradesWithoutClient(t *testing.T) {
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), nil)

	out, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if out["narrative"] != nil {
		t.Errorf("narrative = %v, want nil", out["narrative"])
	}
	if out["narrative_error"] != "llm_unavailable" {
		t.Errorf("narrative_error = %v", out["narrative_error"])
	}
	// The aggregate itself still comes back.
	if out["kpis"].(types.KPIs).TotalRecords != 2 {
		t.Errorf("kpis = %v", out["kpis"])
	}
}

func TestSummaryDegradesOnGenerationFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("boom")}
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), llm)

	out, err := svc.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if out["narrative"] != nil {
		t.Errorf("narrative = %v, want nil", out["narrative"])
	}
	if out["narrative_error"] != "generation_failed" {
		t.Errorf("narrative_error = %v", out["narrative_error"])
	}
}

func TestSummaryPropagatesStoreFailure(t *testing.T) {
	repo := fixtureRepo()
	repo.failWith = errors.New("store down")
	svc := NewNarrativeService(logger.NewNop(), repo, &stubLLM{text: "x"})

	if _, err := svc.Summary(context.Background(), nil); err == nil {
		t.Fatal("expected error when every aggregate fails")
	}
}

func TestChatAnswersQuestion(t *testing.T) {
	llm := &stubLLM{text: "Two records match."}
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), llm)

	out, err := svc.Chat(context.Background(), "how many records?", filters.Selections{"sector": "Energy"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out["answer"] != "Two records match." {
		t.Errorf("answer = %v", out["answer"])
	}
	if out["sessionId"] == "" {
		t.Error("missing sessionId")
	}
	if !strings.Contains(llm.lastUser, "how many records?") {
		t.Errorf("question not in prompt: %q", llm.lastUser)
	}
}

func TestChatRejectsEmptyQuestion(t *testing.T) {
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), &stubLLM{text: "x"})
	if _, err := svc.Chat(context.Background(), "   ", nil); err == nil {
		t.Fatal("expected error for empty question")
	}
}

func TestChatFallsBackToAggregates(t *testing.T) {
	svc := NewNarrativeService(logger.NewNop(), fixtureRepo(), nil)

	out, err := svc.Chat(context.Background(), "what stands out?", nil)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out["answer"] != nil {
		t.Errorf("answer = %v, want nil", out["answer"])
	}
	if out["narrative_error"] != "llm_unavailable" {
		t.Errorf("narrative_error = %v", out["narrative_error"])
	}
	if out["aggregates"] == nil {
		t.Error("expected compressed aggregates in fallback")
	}
}
