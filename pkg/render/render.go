package render

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"suratjalan/pkg/numfmt"
	"suratjalan/pkg/slip"
)

// Paper is continuous form 11 x 9.5 in, printed landscape.
const (
	pageW       = 279.4
	pageH       = 241.3
	marginSide  = 12.7
	marginTop   = 10.0
	rowH        = 6.0
	fontSize    = 12.0
	xLabel      = 15.0
	xColon      = 60.0
	xValue      = 65.0
	xRightLabel = 150.0
)

var ErrEmpty = errors.New("no records to render")

type Options struct {
	// FontDir holds calibri.ttf and calibrib.ttf. Helvetica is used when either is missing.
	FontDir  string
	Compress bool
}

type Renderer struct {
	opts   Options
	family string
}

func New(opts Options) *Renderer {
	r := &Renderer{opts: opts, family: "Helvetica"}
	if opts.FontDir != "" && exists(filepath.Join(opts.FontDir, "calibri.ttf")) && exists(filepath.Join(opts.FontDir, "calibrib.ttf")) {
		r.family = "Calibri"
	} else if opts.FontDir != "" {
		log.Printf("[render] calibri fonts not found in %s, using Helvetica", opts.FontDir)
	}
	return r
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Document is a finished PDF.
type Document struct {
	Pages int
	Bytes []byte
}

func (d *Document) WriteFile(path string) error {
	return os.WriteFile(path, d.Bytes, 0o644)
}

// Single renders one slip on one page.
func (r *Renderer) Single(s slip.Slip) (*Document, error) {
	return r.Batch([]slip.Slip{s})
}

// Batch renders one page per slip, in order. Any malformed slip fails the whole document.
func (r *Renderer) Batch(slips []slip.Slip) (*Document, error) {
	if len(slips) == 0 {
		return nil, &Error{Index: -1, Err: ErrEmpty}
	}
	for i, s := range slips {
		if err := check(s); err != nil {
			return nil, &Error{Index: i, DocumentNumber: s.DocumentNumber, Err: err}
		}
	}

	pdf := r.newPDF()
	tr := r.translator(pdf)
	for _, s := range slips {
		pdf.AddPage()
		r.body(pdf, tr, s)
	}
	if err := pdf.Error(); err != nil {
		return nil, &Error{Index: -1, Err: err}
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &Error{Index: -1, Err: err}
	}
	return &Document{Pages: pdf.PageCount(), Bytes: buf.Bytes()}, nil
}

func check(s slip.Slip) error {
	var missing []string
	if strings.TrimSpace(s.Plate) == "" {
		missing = append(missing, "plate")
	}
	if strings.TrimSpace(s.Driver) == "" {
		missing = append(missing, "driver")
	}
	if strings.TrimSpace(s.Goods) == "" {
		missing = append(missing, "goods")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	for _, w := range []float64{s.Gross, s.Tare} {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return fmt.Errorf("invalid weight %v", w)
		}
	}
	return nil
}

func (r *Renderer) newPDF() *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageH, Ht: pageW},
		FontDirStr:     r.opts.FontDir,
	})
	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.opts.Compress)
	pdf.SetTitle("Surat Jalan", false)
	if r.family == "Calibri" {
		pdf.AddUTF8Font("Calibri", "", "calibri.ttf")
		pdf.AddUTF8Font("Calibri", "B", "calibrib.ttf")
	}
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(r.family, "B", fontSize)
		pdf.CellFormat(0, 7, "SURAT JALAN", "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 7, "BUKTI SLIP PENIMBANGAN", "", 1, "C", false, 0, "")
		pdf.Ln(2)
		rule(pdf)
		pdf.Ln(2)
	})
	return pdf
}

// translator maps UTF-8 to cp1252 for core fonts. UTF-8 fonts take text as is.
func (r *Renderer) translator(pdf *fpdf.Fpdf) func(string) string {
	if r.family == "Calibri" {
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func rule(pdf *fpdf.Fpdf) {
	w, _ := pdf.GetPageSize()
	y := pdf.GetY()
	pdf.Line(marginSide, y, w-marginSide, y)
}

func (r *Renderer) body(pdf *fpdf.Fpdf, tr func(string) string, s slip.Slip) {
	pdf.SetFont(r.family, "", fontSize)
	pdf.Ln(4)

	row := func(label, value, rightLabel string, rightValue any) {
		pdf.SetX(xLabel)
		pdf.CellFormat(xColon-xLabel, rowH, label, "", 0, "", false, 0, "")
		pdf.CellFormat(xValue-xColon, rowH, ":", "", 0, "", false, 0, "")
		pdf.CellFormat(60, rowH, tr(value), "", 0, "", false, 0, "")
		if rightLabel != "" {
			pdf.SetX(xRightLabel)
			pdf.CellFormat(30, rowH, rightLabel, "", 0, "R", false, 0, "")
			pdf.CellFormat(3, rowH, ": ", "", 0, "", false, 0, "")
			pdf.CellFormat(35, rowH, numfmt.Thousands(rightValue), "", 0, "R", false, 0, "")
		}
		pdf.Ln(rowH)
	}

	row("TANGGAL MASUK / JAM", s.EntryDate+"   "+s.EntryTime, "", nil)
	row("TANGGAL KELUAR / JAM", s.ExitDate+"   "+s.ExitTime, "Timbangan I / Bruto", s.Gross)
	row("NOMOR DO / SLIP", s.DocumentNumber, "Timbangan II / Tara", s.Tare)
	row("NOMOR POLISI", s.Plate, "Netto", s.NetWeight())
	row("NAMA SOPIR", s.Driver, "", nil)
	row("NAMA BARANG", s.Goods, "", nil)
	row("PO / DO", s.OrderRef, "", nil)
	row("TRANSPORT", s.Transporter, "", nil)

	pdf.Ln(4)
	rule(pdf)
	pdf.Ln(10)

	w, _ := pdf.GetPageSize()
	slot := (w - 2*marginSide) / 4
	for _, label := range []string{"Ditimbang,", "Sopir,", "Diterima,", "Diketahui,"} {
		pdf.CellFormat(slot, rowH, label, "", 0, "C", false, 0, "")
	}
	pdf.Ln(20)
	for _, name := range []string{s.Weigher, s.Driver, s.Receiver, s.Approver} {
		pdf.CellFormat(slot, rowH, tr(SignatureName(name)), "", 0, "C", false, 0, "")
	}
	pdf.Ln(10)
}

// SignatureName wraps name in parentheses, centred in 15 columns.
// Odd padding puts the extra space on the right.
func SignatureName(name string) string {
	pad := 15 - utf8.RuneCountInString(name)
	if pad <= 0 {
		return "(" + name + ")"
	}
	left := pad / 2
	return "(" + strings.Repeat(" ", left) + name + strings.Repeat(" ", pad-left) + ")"
}
