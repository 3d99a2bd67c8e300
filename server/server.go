package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/ShivamAmratlalPatel/chapter-portal-backend/chapters"
	"github.com/ShivamAmratlalPatel/chapter-portal-backend/config"
	"github.com/ShivamAmratlalPatel/chapter-portal-backend/inventory"
)

// Models lists every table the server reads.
func Models() []any {
	return []any{
		&chapters.Chapter{},
		&inventory.Category{},
		&inventory.Location{},
		&inventory.Item{},
	}
}

// New builds the echo server with all routes registered.
func New(cfg config.PageConfig, db *gorm.DB) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = GlobalErrorHandler()

	e.Use(middleware.Recover())
	e.Use(RequestLogger())

	g := e.Group("")
	chapters.NewHandler(chapters.NewRepository(db, cfg.DefaultSize, cfg.MaxSize)).Register(g)
	inventory.NewHandler(inventory.NewRepository(db, cfg.MaxSize)).Register(g)

	return e
}
