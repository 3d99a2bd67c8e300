package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/pager"
)

// Filter and sort fields are addressed by column name.
var (
	_itemColumns = pager.ColumnMapping{
		"id":                 "id",
		"name":               "name",
		"description":        "description",
		"quantity":           "quantity",
		"category_id":        "category_id",
		"location_id":        "location_id",
		"created_date":       "created_date",
		"last_modified_date": "last_modified_date",
	}
	_namedColumns = pager.ColumnMapping{
		"id":   "id",
		"name": "name",
	}
)

// PageRequest describes a numbered page of a data grid. SortOrder 1 sorts
// ascending, any other value descending.
type PageRequest struct {
	Filters   pager.Filters
	SortField string `query:"sort_field"`
	SortOrder int    `query:"sort_order"`
	Rows      int    `query:"rows"`
	Page      int    `query:"page"`
}

type Repository struct {
	db          *gorm.DB
	maxPageSize int
}

func NewRepository(db *gorm.DB, maxPageSize int) *Repository {
	return &Repository{db: db, maxPageSize: maxPageSize}
}

func (r *Repository) ListItems(ctx context.Context, req PageRequest) (*pager.OffsetPage[ItemRead], error) {
	return listPage(ctx, r, &Item{}, _itemColumns, req, NewItemRead)
}

func (r *Repository) ListLocations(ctx context.Context, req PageRequest) (*pager.OffsetPage[LocationRead], error) {
	return listPage(ctx, r, &Location{}, _namedColumns, req, NewLocationRead)
}

func (r *Repository) ListCategories(ctx context.Context, req PageRequest) (*pager.OffsetPage[CategoryRead], error) {
	return listPage(ctx, r, &Category{}, _namedColumns, req, NewCategoryRead)
}

func listPage[M any, D any](
	ctx context.Context,
	r *Repository,
	model *M,
	columns pager.ColumnMapping,
	req PageRequest,
	convert pager.Converter[M, D],
) (*pager.OffsetPage[D], error) {
	query, err := req.Filters.Apply(r.db.Model(model).Where("is_deleted = ?", false), columns)
	if err != nil {
		return nil, err
	}

	var orderings pager.Orderings
	orderBy, err := pager.ParseSortField(req.SortField, req.SortOrder, columns)
	if err != nil {
		return nil, err
	}
	if orderBy != nil {
		orderings = pager.Orderings{*orderBy}
	}

	p := pager.NewOffsetPager(req.Page, req.Rows, r.maxPageSize)

	return pager.RunOffset(ctx, query, p, orderings, convert)
}
