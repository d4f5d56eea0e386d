package controllerImp

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"suratjalan/pkg/export"
	"suratjalan/pkg/render"
	"suratjalan/pkg/slip"
	"suratjalan/pkg/slip/controller"
	ssvc "suratjalan/pkg/slip/service"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZip  = "application/zip"
)

type httpCtrl struct {
	s ssvc.Service
	r *render.Renderer
}

func New(s ssvc.Service, r *render.Renderer) controller.SlipController {
	return &httpCtrl{s: s, r: r}
}

func (h *httpCtrl) Create(c echo.Context) error {
	var in slip.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.s.Create(c.Request().Context(), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *httpCtrl) List(c echo.Context) error {
	list, err := h.s.Query(c.Request().Context(), filterFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *httpCtrl) Get(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	out, err := h.s.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) Update(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var in slip.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.s.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *httpCtrl) Delete(c echo.Context) error {
	doc := strings.TrimSpace(c.QueryParam("document_number"))
	if doc == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number is required"})
	}
	n, err := h.s.DeleteByDocumentNumber(c.Request().Context(), doc)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

func (h *httpCtrl) PDF(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.s.Get(c.Request().Context(), id)
	if err != nil {
		return writeErr(c, err)
	}
	doc, err := h.r.Single(*s)
	if err != nil {
		return writeErr(c, err)
	}
	name := render.Group{Key: s.DocumentNumber}.FileName()
	return attach(c, mimePDF, name, doc.Bytes, c.QueryParam("download") == "1")
}

func (h *httpCtrl) BatchPDF(c echo.Context) error {
	list, err := h.s.Query(c.Request().Context(), filterFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	doc, err := h.r.Batch(list)
	if err != nil {
		return writeErr(c, err)
	}
	return attach(c, mimePDF, "surat_jalan_batch.pdf", doc.Bytes, c.QueryParam("download") == "1")
}

// GroupedPDF answers with a zip holding one PDF per group.
func (h *httpCtrl) GroupedPDF(c echo.Context) error {
	field, err := render.ParseGroupField(c.QueryParam("by"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	list, err := h.s.Query(c.Request().Context(), filterFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	groups, err := h.r.Grouped(list, field)
	if err != nil {
		return writeErr(c, err)
	}
	if len(groups) == 0 {
		keys, _ := field.Keys(list)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   "no group could be rendered",
			"skipped": len(keys),
		})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, g := range groups {
		w, err := zw.Create(g.FileName())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if _, err := w.Write(g.Doc.Bytes); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}
	if err := zw.Close(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	c.Response().Header().Set("X-Group-Count", strconv.Itoa(len(groups)))
	return attach(c, mimeZip, "surat_jalan_"+string(field)+".zip", buf.Bytes(), true)
}

func (h *httpCtrl) ExportXLSX(c echo.Context) error {
	list, err := h.s.Query(c.Request().Context(), filterFrom(c))
	if err != nil {
		return writeErr(c, err)
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, list); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return attach(c, mimeXLSX, "surat_jalan.xlsx", buf.Bytes(), true)
}

func filterFrom(c echo.Context) slip.Filter {
	return slip.Filter{
		Plate:          strings.TrimSpace(c.QueryParam("plate")),
		DocumentNumber: strings.TrimSpace(c.QueryParam("document_number")),
		RecordedDate:   strings.TrimSpace(c.QueryParam("date")),
		Ascending:      strings.EqualFold(c.QueryParam("order"), "asc"),
	}
}

func attach(c echo.Context, mime, name string, body []byte, download bool) error {
	disp := "inline"
	if download {
		disp = "attachment"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disp, name))
	return c.Blob(http.StatusOK, mime, body)
}

// writeErr maps domain errors to status codes.
func writeErr(c echo.Context, err error) error {
	var (
		ve *slip.ValidationError
		re *render.Error
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "violations": ve.Violations})
	case errors.Is(err, slip.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, render.ErrEmpty):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no records match"})
	case errors.As(err, &re):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("slip: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}
