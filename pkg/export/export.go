package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"suratjalan/pkg/slip"
)

const Sheet = "Surat Jalan"

var header = []string{
	"ID", "Tanggal Masuk", "Jam Masuk", "Tanggal Keluar", "Jam Keluar", "Nomor DO",
	"Nomor Polisi", "Nama Sopir", "Nama Barang", "PO / DO", "Transport",
	"Bruto", "Tara", "Netto", "Tanggal Input", "Ditimbang", "Diterima", "Diketahui",
}

// Workbook lays slips out one per row under a header row.
func Workbook(slips []slip.Slip) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, s := range slips {
		row := []any{
			s.ID, s.EntryDate, s.EntryTime, s.ExitDate, s.ExitTime, s.DocumentNumber,
			s.Plate, s.Driver, s.Goods, s.OrderRef, s.Transporter,
			s.Gross, s.Tare, s.NetWeight(), s.RecordedAt, s.Weigher, s.Receiver, s.Approver,
		}
		if err := f.SetSheetRow(Sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{NumFmt: 3}); err == nil { // #,##0
		_ = f.SetColStyle(Sheet, "L:N", style)
	}
	_ = f.SetColWidth(Sheet, "A", "R", 16)
	return f, nil
}

func Write(w io.Writer, slips []slip.Slip) error {
	f, err := Workbook(slips)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}

func WriteFile(path string, slips []slip.Slip) error {
	f, err := Workbook(slips)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.SaveAs(path)
}
