package analytics

import (
	"testing"

	"github.com/marcusvane/insightdash-backend/internal/types"
)

func recordsWithField(field string, values ...string) []types.Record {
	out := make([]types.Record, len(values))
	for i, v := range values {
		switch field {
		case "topic":
			out[i].Topic = v
		case "sector":
			out[i].Sector = v
		case "region":
			out[i].Region = v
		case "end_year":
			out[i].EndYear = v
		case "intensity":
			out[i].Intensity = v
		}
	}
	return out
}

func TestGroupByIsAPartition(t *testing.T) {
	records := recordsWithField("topic", "oil", "gas", "oil", "", "gas", "oil")
	rows := GroupBy(records, "topic", 0)
	total := 0
	for _, r := range rows {
		total += r.Count
	}
	if total != len(records) {
		t.Fatalf("counts sum to %d, want %d", total, len(records))
	}
}

func TestGroupByNumericKeysSortAscending(t *testing.T) {
	records := recordsWithField("end_year", "2020", "2018", "2019")
	rows := GroupBy(records, "end_year", 0)
	want := []string{"2018", "2019", "2020"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, k := range want {
		if rows[i].Key != k {
			t.Errorf("row %d: got key %q, want %q", i, rows[i].Key, k)
		}
	}
}

func TestGroupByNumericKeysUnknownSortsLast(t *testing.T) {
	records := recordsWithField("end_year", "2020", "", "2018")
	rows := GroupBy(records, "end_year", 0)
	if rows[len(rows)-1].Key != UnknownKey {
		t.Fatalf("expected Unknown last, got order %+v", rows)
	}
}

func TestGroupByCategoricalKeysSortByCountDescending(t *testing.T) {
	records := recordsWithField("topic", "A", "A", "B")
	rows := GroupBy(records, "topic", 0)
	if len(rows) != 2 || rows[0].Key != "A" || rows[0].Count != 2 || rows[1].Key != "B" || rows[1].Count != 1 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestGroupByCollapsesMissingIntoOneUnknownBucket(t *testing.T) {
	records := recordsWithField("topic", "", "  ", "")
	rows := GroupBy(records, "topic", 0)
	if len(rows) != 1 {
		t.Fatalf("got %d buckets, want 1: %+v", len(rows), rows)
	}
	if rows[0].Key != UnknownKey || rows[0].Count != 3 {
		t.Fatalf("unexpected bucket: %+v", rows[0])
	}
}

func TestGroupByLimitTruncates(t *testing.T) {
	records := recordsWithField("topic", "a", "b", "c", "d")
	rows := GroupBy(records, "topic", 2)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestAverageByGroup(t *testing.T) {
	records := []types.Record{
		{Sector: "Energy", Intensity: "4"},
		{Sector: "Energy", Intensity: "2"},
		{Sector: "Retail", Intensity: "5"},
		{Sector: "Retail", Intensity: "bad"},
	}
	rows := AverageByGroup(records, "sector", "intensity")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Energy avg 3.0, Retail avg (5+0)/2 = 2.5: coercion bias included.
	if rows[0].Key != "Energy" || rows[0].Avg != 3 {
		t.Errorf("row 0: %+v", rows[0])
	}
	if rows[1].Key != "Retail" || rows[1].Avg != 2.5 {
		t.Errorf("row 1: %+v", rows[1])
	}
}

func TestAverageByGroupTieBrokenByCount(t *testing.T) {
	records := []types.Record{
		{Sector: "A", Intensity: "2"},
		{Sector: "B", Intensity: "2"},
		{Sector: "B", Intensity: "2"},
	}
	rows := AverageByGroup(records, "sector", "intensity")
	if rows[0].Key != "B" {
		t.Fatalf("expected count tiebreak to favor B: %+v", rows)
	}
}

func TestCrossGroup(t *testing.T) {
	records := []types.Record{
		{Region: "Asia", Sector: "Energy"},
		{Region: "Asia", Sector: "Energy"},
		{Region: "Asia", Sector: "Retail"},
		{Region: "Africa", Sector: "Mining"},
		{Region: "", Sector: "Energy"},
	}
	rows := CrossGroup(records, "region", "sector")
	if len(rows) != 3 {
		t.Fatalf("got %d outer rows, want 3: %+v", len(rows), rows)
	}
	// Outer keys ascend: Africa, Asia, Unknown.
	if rows[0].Key != "Africa" || rows[1].Key != "Asia" || rows[2].Key != UnknownKey {
		t.Fatalf("outer order wrong: %+v", rows)
	}
	// Inner lists descend by count.
	if rows[1].Inner[0].Key != "Energy" || rows[1].Inner[0].Count != 2 {
		t.Fatalf("inner order wrong: %+v", rows[1].Inner)
	}
}

func TestMissingCensusDistinguishesZeroFromEmpty(t *testing.T) {
	records := []types.Record{
		{Topic: "A", Intensity: "0"},
		{Topic: "", Intensity: ""},
		{Topic: "", Intensity: "3"},
	}
	census := MissingCensus(records, []string{"topic", "intensity"})
	if census["missing_topic"] != 2 {
		t.Errorf("missing_topic = %d, want 2", census["missing_topic"])
	}
	// "0" is present data, not a blank.
	if census["missing_intensity"] != 1 {
		t.Errorf("missing_intensity = %d, want 1", census["missing_intensity"])
	}
	if census["total"] != 3 {
		t.Errorf("total = %d, want 3", census["total"])
	}
}
