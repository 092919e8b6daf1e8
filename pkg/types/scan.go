package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScanRequest is the paginated/filterable list request shared by the admin APIs.
type ScanRequest struct {
	Filters   []*CommonFilter `json:"filters"`
	From      int             `json:"from"`
	Size      int             `json:"size"`
	SortBy    string          `json:"sort_by"`
	SortOrder string          `json:"sort_order"`
}

// ScanColumns whitelists the columns a table exposes to filters and sorting.
type ScanColumns struct {
	DefaultSort string
	Allowed     []string
}

var ErrInvalidScanRequest = errors.New("invalid scan request")

const maxScanSize = 200

// filtersAnd is a helper to combine multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

func (c ScanColumns) allowed(field string) bool {
	return lo.Contains(c.Allowed, field)
}

// Validate normalizes paging and rejects filters or sorts on unknown columns.
func (r *ScanRequest) Validate(cols ScanColumns) error {
	if r == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidScanRequest)
	}
	if r.Size <= 0 {
		r.Size = 10
	}
	if r.Size > maxScanSize {
		r.Size = maxScanSize
	}
	if r.From < 0 {
		r.From = 0
	}
	for _, f := range r.Filters {
		if f == nil || !cols.allowed(f.Field) {
			return fmt.Errorf("%w: unsupported filter field", ErrInvalidScanRequest)
		}
		if !f.valid() {
			return fmt.Errorf("%w: bad filter on %q", ErrInvalidScanRequest, f.Field)
		}
	}
	if r.SortBy == "" {
		r.SortBy = cols.DefaultSort
	}
	if !cols.allowed(r.SortBy) {
		return fmt.Errorf("%w: unsupported sort field %q", ErrInvalidScanRequest, r.SortBy)
	}
	r.SortOrder = strings.ToLower(r.SortOrder)
	return nil
}

// Scan counts and loads one page of tx's model into dest.
func Scan(tx *gorm.DB, req *ScanRequest, cols ScanColumns, dest any) (int64, error) {
	if err := req.Validate(cols); err != nil {
		return 0, err
	}
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	base := tx.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	q := base.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if err := q.Find(dest).Error; err != nil {
		return 0, fmt.Errorf("find: %w", err)
	}
	return total, nil
}
