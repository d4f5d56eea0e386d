package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

type migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

// migrations are applied in order; each must be safe on a store that already
// has the change from an older, unversioned schema.
var migrations = []migration{
	{Version: 1, Name: "create surat_jalan", Up: createSuratJalan},
	{Version: 2, Name: "add signer columns", Up: addSignerColumns},
}

const createSQL = `
CREATE TABLE IF NOT EXISTS surat_jalan (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tanggal_masuk TEXT,
    jam_masuk TEXT,
    tanggal_keluar TEXT,
    jam_keluar TEXT,
    nomor_do TEXT,
    nomor_polisi TEXT,
    nama_sopir TEXT,
    nama_barang TEXT,
    po_do TEXT,
    transport TEXT,
    bruto REAL,
    tara REAL,
    netto REAL,
    tanggal_input TEXT
)`

func createSuratJalan(tx *gorm.DB) error {
	return tx.Exec(createSQL).Error
}

func addSignerColumns(tx *gorm.DB) error {
	cols, err := columns(tx, "surat_jalan")
	if err != nil {
		return err
	}
	for _, name := range []string{"nama_ditimbang", "nama_diterima", "nama_diketahui"} {
		if cols[name] {
			continue
		}
		if err := tx.Exec(fmt.Sprintf(`ALTER TABLE surat_jalan ADD COLUMN %s TEXT DEFAULT ''`, name)).Error; err != nil {
			return fmt.Errorf("add column %s: %w", name, err)
		}
		log.Printf("[db] added column %s", name)
	}
	return nil
}

type colInfo struct {
	Cid       int
	Name      string
	Type      string
	NotNull   int
	DfltValue sql.NullString
	Pk        int
}

// columns returns the lower-cased column names of table.
func columns(tx *gorm.DB, table string) (map[string]bool, error) {
	var cols []colInfo
	if err := tx.Raw(fmt.Sprintf(`PRAGMA table_info(%s)`, table)).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	out := make(map[string]bool, len(cols))
	for _, c := range cols {
		out[strings.ToLower(c.Name)] = true
	}
	return out, nil
}

// EnsureSchema brings the store up to the latest version. Running it again is a no-op.
func EnsureSchema(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_versions (
    version INTEGER PRIMARY KEY,
    name TEXT,
    applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("schema_versions: %w", err)
	}
	var applied []int
	if err := db.Raw(`SELECT version FROM schema_versions`).Scan(&applied).Error; err != nil {
		return fmt.Errorf("read schema_versions: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}
	for _, m := range migrations {
		if done[m.Version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Exec(`INSERT INTO schema_versions (version, name) VALUES (?, ?)`, m.Version, m.Name).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		log.Printf("[db] applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}

// SchemaVersion reports the highest applied migration.
func SchemaVersion(db *gorm.DB) (int, error) {
	var v int
	if err := db.Raw(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&v).Error; err != nil {
		return 0, err
	}
	return v, nil
}
