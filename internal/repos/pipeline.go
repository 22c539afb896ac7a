package repos

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/types"
)

// Pipeline is the shared builder behind every grouped aggregation. Each
// endpoint used to hand-assemble its own match/group/sort stages and
// re-implement the numeric-coercion-then-average dance inline; composing the
// same four stages here keeps the semantics in one place.
//
// Group keys normalize NULL/blank to the Unknown bucket inside SQL so the
// store-side grouping buckets exactly like the in-memory reducers do.
// Averages run over the coerced *_num columns written at ingest, which is
// where the non-numeric→0 substitution already happened.
type Pipeline struct {
	groupField string
	selects    []string
	pred       filters.Predicate
	order      string
	limit      int
}

// GroupKeyExpr is the SQL normalization for a grouping column.
func GroupKeyExpr(field string) string {
	return fmt.Sprintf("COALESCE(NULLIF(TRIM(%s), ''), '%s')", field, UnknownKey)
}

// UnknownKey mirrors the reducers' sentinel; repos renders it into SQL.
const UnknownKey = "Unknown"

func NewPipeline(groupField string) *Pipeline {
	return &Pipeline{
		groupField: groupField,
		selects:    []string{GroupKeyExpr(groupField) + " AS key"},
	}
}

func (p *Pipeline) Match(pred filters.Predicate) *Pipeline {
	p.pred = pred
	return p
}

func (p *Pipeline) Count() *Pipeline {
	p.selects = append(p.selects, "COUNT(*) AS count")
	return p
}

// Avg adds an arithmetic mean over a metric's coerced column.
func (p *Pipeline) Avg(metric, alias string) *Pipeline {
	p.selects = append(p.selects, fmt.Sprintf("AVG(%s_num) AS %s", metric, alias))
	return p
}

// Sum adds a total over a metric's coerced column.
func (p *Pipeline) Sum(metric, alias string) *Pipeline {
	p.selects = append(p.selects, fmt.Sprintf("SUM(%s_num) AS %s", metric, alias))
	return p
}

// AvgExpr adds a mean over an arbitrary per-record expression; the risk
// ranking uses it for the intensity*likelihood*relevance product.
func (p *Pipeline) AvgExpr(expr, alias string) *Pipeline {
	p.selects = append(p.selects, fmt.Sprintf("AVG(%s) AS %s", expr, alias))
	return p
}

func (p *Pipeline) Sort(order string) *Pipeline {
	p.order = order
	return p
}

func (p *Pipeline) Limit(n int) *Pipeline {
	p.limit = n
	return p
}

// Run executes the composed pipeline and scans the grouped rows into dest.
func (p *Pipeline) Run(ctx context.Context, db *gorm.DB, dest any) error {
	q := db.WithContext(ctx).
		Model(&types.Record{}).
		Select(strings.Join(p.selects, ", "))
	q = p.pred.Apply(q)
	q = q.Group(GroupKeyExpr(p.groupField))
	if p.order != "" {
		q = q.Order(p.order)
	}
	if p.limit > 0 {
		q = q.Limit(p.limit)
	}
	return q.Scan(dest).Error
}
