package controller

import "github.com/labstack/echo/v4"

type ReportController interface {
	Daily(c echo.Context) error
	SendDaily(c echo.Context) error
}
