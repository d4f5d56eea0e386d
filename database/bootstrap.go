// database/bootstrap.go
package database

import (
	"fmt"
	"log"
	"os"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionError means the store could not be opened. Callers treat it as fatal.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("open store %s: %v", e.Path, e.Err) }

func (e *ConnectionError) Unwrap() error { return e.Err }

// OpenSQLite opens the store file with a single shared connection so every
// read and write is serialised.
func OpenSQLite(path string) (*gorm.DB, error) {
	gl := logger.New(
		log.New(os.Stdout, "[db] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), &gorm.Config{Logger: gl})
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("[db] close: %v", err)
	}
}
