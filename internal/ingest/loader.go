package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/marcusvane/insightdash-backend/internal/analytics"
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

// Manifest describes one dataset load.
type Manifest struct {
	File      string `yaml:"file"`
	BatchSize int    `yaml:"batch_size"`
	Truncate  bool   `yaml:"truncate"`
}

const defaultBatchSize = 500

func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.File == "" {
		return Manifest{}, fmt.Errorf("manifest missing file")
	}
	if m.BatchSize <= 0 {
		m.BatchSize = defaultBatchSize
	}
	return m, nil
}

// fieldString renders a raw JSON value the way the dataset stores it:
// numbers without a trailing ".0", blanks and nulls as the empty string.
func fieldString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

// NewRecord builds one Record from a decoded dataset row, writing both the
// raw field values and the coerced numeric columns.
func NewRecord(raw map[string]any) types.Record {
	r := types.Record{
		ID:         uuid.New(),
		EndYear:    fieldString(raw["end_year"]),
		StartYear:  fieldString(raw["start_year"]),
		Intensity:  fieldString(raw["intensity"]),
		Likelihood: fieldString(raw["likelihood"]),
		Relevance:  fieldString(raw["relevance"]),
		Impact:     fieldString(raw["impact"]),
		Topic:      fieldString(raw["topic"]),
		Sector:     fieldString(raw["sector"]),
		Region:     fieldString(raw["region"]),
		Country:    fieldString(raw["country"]),
		City:       fieldString(raw["city"]),
		Pestle:     fieldString(raw["pestle"]),
		Source:     fieldString(raw["source"]),
		SWOT:       fieldString(raw["swot"]),
		Title:      fieldString(raw["title"]),
		Insight:    fieldString(raw["insight"]),
		URL:        fieldString(raw["url"]),
		Added:      fieldString(raw["added"]),
		Published:  fieldString(raw["published"]),
	}

	r.IntensityNum = analytics.SafeNumber(raw["intensity"])
	r.LikelihoodNum = analytics.SafeNumber(raw["likelihood"])
	r.RelevanceNum = analytics.SafeNumber(raw["relevance"])
	r.ImpactNum = analytics.SafeNumber(raw["impact"])

	// Year bounds stay NULL when unparseable, so range filters skip the
	// record the way a missing field would.
	if v := analytics.SafeNumber(raw["end_year"]); r.EndYear != "" && v != 0 {
		r.EndYearNum = &v
	}
	if v := analytics.SafeNumber(raw["start_year"]); r.StartYear != "" && v != 0 {
		r.StartYearNum = &v
	}
	return r
}

type Loader struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewLoader(db *gorm.DB, log *logger.Logger) *Loader {
	return &Loader{log: log.With("service", "Loader"), db: db}
}

// Load reads the dataset file named by the manifest and bulk-inserts it.
// Returns the number of records written.
func (l *Loader) Load(ctx context.Context, m Manifest) (int, error) {
	raw, err := os.ReadFile(m.File)
	if err != nil {
		return 0, fmt.Errorf("read dataset: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("parse dataset: %w", err)
	}

	records := make([]types.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, NewRecord(row))
	}

	db := l.db.WithContext(ctx)
	if m.Truncate {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&types.Record{}).Error; err != nil {
			return 0, fmt.Errorf("truncate records: %w", err)
		}
		l.log.Info("Truncated records table")
	}

	batch := m.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	if len(records) > 0 {
		if err := db.CreateInBatches(records, batch).Error; err != nil {
			return 0, fmt.Errorf("insert records: %w", err)
		}
	}

	l.log.Info("Dataset loaded", "file", m.File, "records", len(records))
	return len(records), nil
}
