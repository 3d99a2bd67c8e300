package chapters

import (
	"context"

	"gorm.io/gorm"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/pager"
)

var (
	_sortColumns = pager.SortColumns{
		Date: "created_date",
		Name: "name",
	}
	_defaultOrder = pager.OrderBy{Column: "created_date", Direction: pager.DirectionDESC}
	_tieBreak     = pager.OrderBy{Column: "id", Direction: pager.DirectionASC}

	_getters = pager.Getters[Chapter]{
		"id":           func(c Chapter) any { return c.ID },
		"name":         func(c Chapter) any { return c.Name },
		"created_date": func(c Chapter) any { return c.CreatedDate },
	}
)

// ListRequest is bound from the query string of GET /chapters.
type ListRequest struct {
	pager.RawKeysetPager
	SortBy string `query:"sort_by"`
}

type Repository struct {
	db              *gorm.DB
	defaultPageSize int
	maxPageSize     int
}

func NewRepository(db *gorm.DB, defaultPageSize, maxPageSize int) *Repository {
	return &Repository{
		db:              db,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// List returns one page of chapters that are not deleted, ordered by the
// requested sort mode and then by id.
func (r *Repository) List(ctx context.Context, req ListRequest) (*pager.Page[ChapterRead], error) {
	sortBy, err := pager.ParseSortBy(req.SortBy)
	if err != nil {
		return nil, err
	}

	primary, err := pager.ResolveSort(_sortColumns, sortBy)
	if err != nil {
		return nil, err
	}

	if req.PerPage <= 0 {
		req.PerPage = r.defaultPageSize
	}

	p, err := req.RawKeysetPager.Decode(r.maxPageSize, pager.KeysetOrder(primary, _defaultOrder, _tieBreak)...)
	if err != nil {
		return nil, err
	}

	query := r.db.Model(&Chapter{}).Where("is_deleted = ?", false)

	return pager.Run(ctx, query, p, _getters, NewChapterRead)
}
