package router

import (
	"github.com/labstack/echo/v4"

	reportCtrl "suratjalan/pkg/report/controller"
	slipCtrl "suratjalan/pkg/slip/controller"
)

func New(
	e *echo.Echo,
	slips slipCtrl.SlipController,
	reports reportCtrl.ReportController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api/v1")
	api.GET("/health", healthCtrl.Health)

	api.POST("/slips", slips.Create)
	api.GET("/slips", slips.List)
	api.DELETE("/slips", slips.Delete)
	api.GET("/slips/pdf", slips.BatchPDF)
	api.GET("/slips/pdf/grouped", slips.GroupedPDF)
	api.GET("/slips/export.xlsx", slips.ExportXLSX)
	api.GET("/slips/:id", slips.Get)
	api.PUT("/slips/:id", slips.Update)
	api.GET("/slips/:id/pdf", slips.PDF)

	api.GET("/reports/daily", reports.Daily)
	api.POST("/reports/daily/send", reports.SendDaily)
	return e
}
