package chapters

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/chapters", h.List)
}

// List handles GET /chapters?cursor_column=&cursor_id=&previous=&sort_by=&per_page=
func (h *Handler) List(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	page, err := h.repo.List(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}
