package pager

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// OffsetPager is used by grid-style listings that address pages by number
// and need the total number of records. It applies LIMIT/OFFSET, so prefer
// KeysetPager for anything that is traversed page after page.
type OffsetPager struct {
	page int
	rows int
}

// NewOffsetPager builds a pager for the zero-based page of rows records.
// A negative page is treated as the first page and rows is clamped to
// maxLimit with NormalizeLimitMax.
func NewOffsetPager(page, rows, maxLimit int) *OffsetPager {
	return &OffsetPager{
		page: max(page, 0),
		rows: NormalizeLimitMax(rows, maxLimit),
	}
}

// GetOffset returns the number of records skipped before the page.
func (p *OffsetPager) GetOffset() int {
	if p == nil {
		return 0
	}

	return p.page * p.rows
}

// GetRows returns the page size.
func (p *OffsetPager) GetRows() int {
	if p == nil || p.rows <= 0 {
		return DefaultLimit
	}

	return p.rows
}

// Apply applies the offset and limit to a gorm query.
func (p *OffsetPager) Apply(db *gorm.DB) *gorm.DB {
	db = db.Limit(p.GetRows())
	if offset := p.GetOffset(); offset > 0 {
		db = db.Offset(offset)
	}

	return db
}

// OffsetPage is a numbered page together with the total number of records
// matching the filtered query.
type OffsetPage[T any] struct {
	Results      []T   `json:"results"`
	TotalRecords int64 `json:"total_records"`
}

// RunOffset counts the filtered query, fetches the page described by p and
// converts every row with convert. orderings may be empty.
func RunOffset[M any, D any](
	ctx context.Context,
	db *gorm.DB,
	p *OffsetPager,
	orderings Orderings,
	convert Converter[M, D],
) (*OffsetPage[D], error) {
	base := db.WithContext(ctx)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("cannot count records: %w", err)
	}

	query := base
	if len(orderings) > 0 {
		if err := orderings.validate(); err != nil {
			return nil, fmt.Errorf("cannot paginate: %w", err)
		}
		query = orderings.Apply(query)
	}

	var rows []M
	if err := p.Apply(query).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("cannot fetch page: %w", err)
	}

	page := &OffsetPage[D]{
		Results:      make([]D, 0, len(rows)),
		TotalRecords: total,
	}

	for _, row := range rows {
		item, err := convert(row)
		if err != nil {
			return nil, fmt.Errorf("cannot convert row: %w", err)
		}

		page.Results = append(page.Results, item)
	}

	return page, nil
}
