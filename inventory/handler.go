package inventory

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/pager"
)

// gridPage is the response shape data-grid clients expect.
type gridPage[T any] struct {
	Customers    []T   `json:"customers"`
	TotalRecords int64 `json:"totalRecords"`
}

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Register(g *echo.Group) {
	g.PUT("/inventory/pagination", gridHandler(h.repo.ListItems))
	g.PUT("/inventory/location/pagination", gridHandler(h.repo.ListLocations))
	g.PUT("/inventory/category/pagination", gridHandler(h.repo.ListCategories))
}

// gridHandler binds sort_field, sort_order, rows and page from the query
// string and the column filters from the JSON body.
func gridHandler[T any](list func(context.Context, PageRequest) (*pager.OffsetPage[T], error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		var (
			req    PageRequest
			binder = &echo.DefaultBinder{}
		)

		if err := binder.BindQueryParams(c, &req); err != nil {
			return err
		}
		if err := binder.BindBody(c, &req.Filters); err != nil {
			return err
		}

		page, err := list(c.Request().Context(), req)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, gridPage[T]{
			Customers:    page.Results,
			TotalRecords: page.TotalRecords,
		})
	}
}
