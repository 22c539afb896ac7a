package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marcusvane/insightdash-backend/internal/analytics"
	"github.com/marcusvane/insightdash-backend/internal/clients/openai"
	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/repos"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

const summarySystemPrompt = `You are an analyst writing for a market-intelligence dashboard.
You receive a JSON bundle of aggregates computed over an insight dataset
(intensity, likelihood, relevance metrics grouped by topic, sector, region,
country, source and year). Write a concise narrative: lead with the headline
numbers, call out the riskiest topics and any strong correlations, and note
data-quality gaps when the missing-data counters are large. Do not invent
numbers that are not in the bundle.`

const chatSystemPrompt = `You are an analyst answering questions about a
market-intelligence dataset. You receive a JSON bundle of aggregates and a
question. Answer only from the bundle; when the bundle cannot support an
answer, say so.`

// Degradation reasons returned in the narrative_error field.
const (
	narrativeErrUnavailable = "llm_unavailable"
	narrativeErrFailed      = "generation_failed"
)

// NarrativeService layers LLM prose over the aggregation engine. It always
// returns the local aggregate; the narrative itself is best-effort.
type NarrativeService interface {
	Summary(ctx context.Context, sel filters.Selections) (types.Insight, error)
	Chat(ctx context.Context, question string, sel filters.Selections) (types.Insight, error)
}

type narrativeService struct {
	log     *logger.Logger
	repo    repos.RecordRepo
	llm     openai.Client // nil when OPENAI_API_KEY is missing
	maxItem int
}

func NewNarrativeService(log *logger.Logger, repo repos.RecordRepo, llm openai.Client) NarrativeService {
	return &narrativeService{
		log:     log.With("service", "NarrativeService"),
		repo:    repo,
		llm:     llm,
		maxItem: analytics.DefaultMaxItemsPerField,
	}
}

// buildInsight assembles the summary aggregate bundle. Push-down work and
// the in-memory window statistics fan out on the request context, so one
// failed store call cancels the request's remaining work only.
func (s *narrativeService) buildInsight(ctx context.Context, sel filters.Selections) (types.Insight, error) {
	pred := filters.Build(sel)

	var (
		kpis     types.KPIs
		risk     []types.RiskRow
		topics   []types.GroupRow
		sectors  []types.GroupRow
		regions  []types.GroupRow
		census   types.MissingCensus
		matrix   types.CorrelationMatrix
		scatter  []types.ScatterPoint
		crossTab []types.CrossTabRow
		topRecs  []types.TopRecord
		relBySec []analytics.AvgGroup
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		kpis, err = s.repo.SummaryKPIs(gctx)
		return err
	})
	g.Go(func() (err error) {
		risk, err = s.repo.RankByRisk(gctx, pred)
		return err
	})
	g.Go(func() (err error) {
		topics, err = s.repo.GroupAndAggregate(gctx, pred, repos.GroupSpec{
			Field: "topic", WithCount: true,
			Metrics: []string{"intensity", "likelihood"},
			Limit:   s.maxItem,
		})
		return err
	})
	g.Go(func() (err error) {
		sectors, err = s.repo.GroupAndAggregate(gctx, pred, repos.GroupSpec{
			Field: "sector", WithCount: true,
		})
		return err
	})
	g.Go(func() (err error) {
		regions, err = s.repo.GroupAndAggregate(gctx, pred, repos.GroupSpec{
			Field: "region", WithCount: true,
			Metrics: []string{"intensity", "likelihood"},
		})
		return err
	})
	g.Go(func() (err error) {
		census, err = s.repo.MissingCensus(gctx, types.CensusFields)
		return err
	})
	g.Go(func() error {
		recs, err := s.repo.Find(gctx, pred, nil, correlationWindow, 0)
		if err != nil {
			return err
		}
		matrix = analytics.CorrelationMatrix(recs)
		scatter = analytics.ScatterProjection(recs)
		crossTab = analytics.CrossGroup(recs, "region", "sector")
		topRecs, _ = analytics.TopByField(recs, "intensity", s.maxItem)
		relBySec = analytics.AverageByGroup(recs, "sector", "relevance")
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assemble insight: %w", err)
	}

	return types.Insight{
		"kpis":                kpis,
		"highRiskTopics":      risk,
		"topTopics":           topics,
		"sectorDistribution":  sectors,
		"regionHeatmap":       regions,
		"correlations":        matrix,
		"scatter":             scatter,
		"sectorByRegion":      crossTab,
		"topIntensityRecords": topRecs,
		"relevanceBySector":   relBySec,
		"missingData":         census,
	}, nil
}

func (s *narrativeService) generate(ctx context.Context, system string, insight types.Insight, question string) (string, string) {
	if s.llm == nil {
		return "", narrativeErrUnavailable
	}

	compressed := analytics.Compress(insight, s.maxItem)
	raw, err := json.Marshal(compressed)
	if err != nil {
		s.log.Warn("Insight marshal failed", "error", err.Error())
		return "", narrativeErrFailed
	}

	user := string(raw)
	if question != "" {
		user = "Question: " + question + "\n\nData:\n" + user
	}

	text, err := s.llm.GenerateText(ctx, system, user)
	if err != nil {
		s.log.Warn("Narrative generation failed", "error", err.Error())
		return "", narrativeErrFailed
	}
	return strings.TrimSpace(text), ""
}

func (s *narrativeService) Summary(ctx context.Context, sel filters.Selections) (types.Insight, error) {
	insight, err := s.buildInsight(ctx, sel)
	if err != nil {
		return nil, err
	}

	text, reason := s.generate(ctx, summarySystemPrompt, insight, "")
	if reason != "" {
		insight["narrative"] = nil
		insight["narrative_error"] = reason
		return insight, nil
	}
	insight["narrative"] = text
	return insight, nil
}

func (s *narrativeService) Chat(ctx context.Context, question string, sel filters.Selections) (types.Insight, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question required")
	}

	sessionID := uuid.NewString()
	s.log.Info("Chat question received", "session_id", sessionID, "question_len", len(question))

	insight, err := s.buildInsight(ctx, sel)
	if err != nil {
		return nil, err
	}

	out := types.Insight{
		"sessionId": sessionID,
		"question":  question,
	}
	text, reason := s.generate(ctx, chatSystemPrompt, insight, question)
	if reason != "" {
		out["answer"] = nil
		out["narrative_error"] = reason
		out["aggregates"] = analytics.Compress(insight, s.maxItem)
		return out, nil
	}
	out["answer"] = text
	return out, nil
}
