package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/pager"
)

var _badRequestErrors = []error{
	pager.ErrInvalidCursor,
	pager.ErrInvalidSortConfiguration,
	pager.ErrInvalidFilter,
}

// GlobalErrorHandler renders pagination errors as 400 and everything that
// is not an echo.HTTPError as 500.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		for _, target := range _badRequestErrors {
			if errors.Is(err, target) {
				_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error(), "title": target.Error()})
				return
			}
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.ErrorContext(c.Request().Context(), "Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
