package analytics

import (
	"math"
	"testing"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

func TestPearsonPerfectCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3}
	if r := Pearson(xs, []float64{1, 2, 3}); math.Abs(r-1) > 1e-9 {
		t.Fatalf("identical series: got %v, want 1", r)
	}
	if r := Pearson(xs, []float64{3, 2, 1}); math.Abs(r+1) > 1e-9 {
		t.Fatalf("reversed series: got %v, want -1", r)
	}
}

func TestPearsonSymmetry(t *testing.T) {
	xs := []float64{1, 4, 2, 8, 5, 7}
	ys := []float64{2, 3, 1, 9, 4, 6}
	if Pearson(xs, ys) != Pearson(ys, xs) {
		t.Fatalf("pearson not symmetric: %v vs %v", Pearson(xs, ys), Pearson(ys, xs))
	}
}

func TestPearsonDegenerateInputs(t *testing.T) {
	if r := Pearson([]float64{1, 2}, []float64{1, 2}); r != 0 {
		t.Errorf("fewer than 3 points: got %v, want 0", r)
	}
	if r := Pearson([]float64{1, 2, 3}, []float64{1, 2}); r != 0 {
		t.Errorf("length mismatch: got %v, want 0", r)
	}
	if r := Pearson([]float64{5, 5, 5}, []float64{1, 2, 3}); r != 0 {
		t.Errorf("constant x series: got %v, want 0", r)
	}
	if r := Pearson([]float64{1, 2, 3}, []float64{4, 4, 4}); r != 0 {
		t.Errorf("constant y series: got %v, want 0", r)
	}
	if r := Pearson(nil, nil); r != 0 {
		t.Errorf("empty series: got %v, want 0", r)
	}
}

func TestCorrelationMatrixFromDirtyRecords(t *testing.T) {
	records := []types.Record{
		{Intensity: "1", Likelihood: "2", Relevance: "1"},
		{Intensity: "2", Likelihood: "4", Relevance: "2"},
		{Intensity: "3", Likelihood: "6", Relevance: "3"},
		{Intensity: "4", Likelihood: "8", Relevance: "4"},
	}
	m := CorrelationMatrix(records)
	if m.IntensityLikelihood != 1 {
		t.Errorf("intensity/likelihood: got %v, want 1", m.IntensityLikelihood)
	}
	if m.IntensityRelevance != 1 {
		t.Errorf("intensity/relevance: got %v, want 1", m.IntensityRelevance)
	}

	// Non-numeric values coerce to 0 instead of poisoning the series.
	dirty := []types.Record{
		{Intensity: "not-a-number", Likelihood: "2", Relevance: ""},
		{Intensity: "2", Likelihood: "4", Relevance: "2"},
		{Intensity: "3", Likelihood: "6", Relevance: "3"},
	}
	dm := CorrelationMatrix(dirty)
	if math.IsNaN(dm.IntensityLikelihood) || math.IsNaN(dm.IntensityRelevance) || math.IsNaN(dm.RelevanceLikelihood) {
		t.Fatalf("matrix leaked NaN: %+v", dm)
	}
}
