package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"suratjalan/pkg/report"
	"suratjalan/pkg/report/controller"
	"suratjalan/pkg/slip"
)

type ReportCtrl struct{ s *report.Scheduler }

func New(s *report.Scheduler) controller.ReportController { return &ReportCtrl{s: s} }

// Daily returns the summary for ?date=YYYY-MM-DD (default today).
func (h *ReportCtrl) Daily(c echo.Context) error {
	day, err := h.day(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	res, msg, err := h.s.Preview(c.Request().Context(), day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"report": res, "message": msg})
}

func (h *ReportCtrl) SendDaily(c echo.Context) error {
	day, err := h.day(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	res, err := h.s.RunDaily(c.Request().Context(), day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"sent": res.Sent, "report": res})
}

func (h *ReportCtrl) day(c echo.Context) (time.Time, error) {
	loc := h.s.Location()
	v := c.QueryParam("date")
	if v == "" {
		return time.Now().In(loc), nil
	}
	return time.ParseInLocation(slip.DateLayout, v, loc)
}
