package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Snapshot copies the store file to backupDir/surat_jalan_backup_<stamp>.db.
// It returns "" without error when dbPath does not exist yet.
func Snapshot(dbPath, backupDir string, now time.Time) (string, error) {
	src, err := os.Open(dbPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("snapshot open: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot mkdir: %w", err)
	}
	dst := filepath.Join(backupDir, "surat_jalan_backup_"+now.Format("20060102_150405")+".db")
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("snapshot create: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("snapshot copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("snapshot close: %w", err)
	}
	return dst, nil
}
