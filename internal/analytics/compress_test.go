package analytics

import (
	"testing"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

func TestCompressTruncatesListsKeepingOrder(t *testing.T) {
	items := make([]types.KeyCount, 20)
	for i := range items {
		items[i] = types.KeyCount{Key: string(rune('a' + i)), Count: 20 - i}
	}
	insight := types.Insight{"topTopics": items, "total": 20}

	out := Compress(insight, 15)

	got, ok := out["topTopics"].([]types.KeyCount)
	if !ok {
		t.Fatalf("topTopics type changed: %T", out["topTopics"])
	}
	if len(got) != 15 {
		t.Fatalf("got %d items, want 15", len(got))
	}
	for i := range got {
		if got[i] != items[i] {
			t.Fatalf("order not preserved at %d: %+v vs %+v", i, got[i], items[i])
		}
	}
	if out["total"] != 20 {
		t.Errorf("scalar field changed: %v", out["total"])
	}
}

func TestCompressShortFieldsPassThrough(t *testing.T) {
	short := []string{"a", "b"}
	out := Compress(types.Insight{"list": short, "narrative": "fine"}, 15)
	if got := out["list"].([]string); len(got) != 2 {
		t.Fatalf("short list modified: %v", got)
	}
	if out["narrative"] != "fine" {
		t.Fatalf("scalar modified: %v", out["narrative"])
	}
}

func TestCompressBoundsKeyedMappings(t *testing.T) {
	census := types.MissingCensus{}
	for i := 0; i < 20; i++ {
		census["missing_"+string(rune('a'+i))] = i
	}
	out := Compress(types.Insight{"census": census}, 15)
	got, ok := out["census"].(types.MissingCensus)
	if !ok {
		t.Fatalf("census type changed: %T", out["census"])
	}
	if len(got) != 15 {
		t.Fatalf("got %d keys, want 15", len(got))
	}
}

func TestCompressDoesNotMutateInput(t *testing.T) {
	items := make([]int, 30)
	insight := types.Insight{"xs": items}
	_ = Compress(insight, 10)
	if len(insight["xs"].([]int)) != 30 {
		t.Fatalf("input mutated")
	}
}
