package slip

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Slip is one weighing event (surat jalan / slip penimbangan).
type Slip struct {
	ID             uint    `json:"id"              gorm:"column:id;primaryKey;autoIncrement"`
	EntryDate      string  `json:"entry_date"      gorm:"column:tanggal_masuk"`
	EntryTime      string  `json:"entry_time"      gorm:"column:jam_masuk"`
	ExitDate       string  `json:"exit_date"       gorm:"column:tanggal_keluar"`
	ExitTime       string  `json:"exit_time"       gorm:"column:jam_keluar"`
	DocumentNumber string  `json:"document_number" gorm:"column:nomor_do"`
	Plate          string  `json:"plate"           gorm:"column:nomor_polisi"`
	Driver         string  `json:"driver"          gorm:"column:nama_sopir"`
	Goods          string  `json:"goods"           gorm:"column:nama_barang"`
	OrderRef       string  `json:"order_ref"       gorm:"column:po_do"`
	Transporter    string  `json:"transporter"     gorm:"column:transport"`
	Gross          float64 `json:"gross"           gorm:"column:bruto"`
	Tare           float64 `json:"tare"            gorm:"column:tara"`
	Net            float64 `json:"net"             gorm:"column:netto"`
	RecordedAt     string  `json:"recorded_at"     gorm:"column:tanggal_input"` // YYYY-MM-DD HH:MM:SS

	// signature block
	Weigher  string `json:"weigher"  gorm:"column:nama_ditimbang"`
	Receiver string `json:"receiver" gorm:"column:nama_diterima"`
	Approver string `json:"approver" gorm:"column:nama_diketahui"`
}

func (Slip) TableName() string { return "surat_jalan" }

// NetWeight returns the stored net when it agrees with gross and tare,
// otherwise the recomputed value.
func (s Slip) NetWeight() float64 {
	if n := ComputeNet(s.Gross, s.Tare); n != s.Net {
		return n
	}
	return s.Net
}

// DocumentNumber derives the ddmmYYYY-HHMM label from an entry date and time.
func DocumentNumber(entryDate, entryTime string) (string, error) {
	d, err := time.Parse(DateLayout, entryDate)
	if err != nil {
		return "", fmt.Errorf("entry date %q: %w", entryDate, err)
	}
	t, err := parseClock(entryTime)
	if err != nil {
		return "", fmt.Errorf("entry time %q: %w", entryTime, err)
	}
	return d.Format("02012006") + "-" + t.Format("1504"), nil
}

// Filter selects slips for Query. Empty fields match everything.
type Filter struct {
	Plate          string // substring, case-insensitive
	DocumentNumber string // substring, case-insensitive
	RecordedDate   string // YYYY-MM-DD prefix of RecordedAt
	Ascending      bool
}
