package controller

import "github.com/labstack/echo/v4"

type SlipController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error

	PDF(c echo.Context) error
	BatchPDF(c echo.Context) error
	GroupedPDF(c echo.Context) error
	ExportXLSX(c echo.Context) error
}
