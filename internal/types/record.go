package types

import (
	"time"

	"github.com/google/uuid"
)

// Record is one row of the insight dataset. The upstream feed is dirty:
// numeric fields arrive as numbers, numeric strings, or blanks, so every
// field is stored exactly as it arrived (TEXT, empty string for missing).
// The *_num columns hold the coerced values written at ingest time; all
// push-down averaging and ranking runs over those so store-side results and
// in-memory reductions agree by construction.
type Record struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`

	EndYear    string `gorm:"column:end_year" json:"end_year"`
	StartYear  string `gorm:"column:start_year" json:"start_year"`
	Intensity  string `gorm:"column:intensity" json:"intensity"`
	Likelihood string `gorm:"column:likelihood" json:"likelihood"`
	Relevance  string `gorm:"column:relevance" json:"relevance"`
	Impact     string `gorm:"column:impact" json:"impact"`
	Topic      string `gorm:"column:topic;index" json:"topic"`
	Sector     string `gorm:"column:sector;index" json:"sector"`
	Region     string `gorm:"column:region;index" json:"region"`
	Country    string `gorm:"column:country;index" json:"country"`
	City       string `gorm:"column:city" json:"city"`
	Pestle     string `gorm:"column:pestle;index" json:"pestle"`
	Source     string `gorm:"column:source;index" json:"source"`
	SWOT       string `gorm:"column:swot" json:"swot"`
	Title      string `gorm:"column:title" json:"title"`
	Insight    string `gorm:"column:insight" json:"insight"`
	URL        string `gorm:"column:url" json:"url"`
	Added      string `gorm:"column:added" json:"added"`
	Published  string `gorm:"column:published" json:"published"`

	IntensityNum  float64  `gorm:"column:intensity_num;not null;default:0" json:"-"`
	LikelihoodNum float64  `gorm:"column:likelihood_num;not null;default:0" json:"-"`
	RelevanceNum  float64  `gorm:"column:relevance_num;not null;default:0" json:"-"`
	ImpactNum     float64  `gorm:"column:impact_num;not null;default:0" json:"-"`
	EndYearNum    *float64 `gorm:"column:end_year_num;index" json:"-"`
	StartYearNum  *float64 `gorm:"column:start_year_num" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (Record) TableName() string { return "records" }

// Field returns the raw value of a dataset field by its wire name.
// Unknown names return the empty string, which downstream normalization
// folds into the "Unknown" bucket.
func (r *Record) Field(name string) string {
	switch name {
	case "end_year":
		return r.EndYear
	case "start_year":
		return r.StartYear
	case "intensity":
		return r.Intensity
	case "likelihood":
		return r.Likelihood
	case "relevance":
		return r.Relevance
	case "impact":
		return r.Impact
	case "topic":
		return r.Topic
	case "sector":
		return r.Sector
	case "region":
		return r.Region
	case "country":
		return r.Country
	case "city":
		return r.City
	case "pestle":
		return r.Pestle
	case "source":
		return r.Source
	case "swot":
		return r.SWOT
	case "title":
		return r.Title
	case "insight":
		return r.Insight
	case "url":
		return r.URL
	case "added":
		return r.Added
	case "published":
		return r.Published
	}
	return ""
}
