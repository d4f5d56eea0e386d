package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"suratjalan/database"
)

var appStart = time.Now()

type HealthCtrl struct {
	db       *gorm.DB
	features map[string]bool
}

// NewHealthCtrl reports the store plus the on/off state of optional features.
func NewHealthCtrl(db *gorm.DB, features map[string]bool) *HealthCtrl {
	return &HealthCtrl{db: db, features: features}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}
	db := sub{OK: true}
	schema := 0
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			db = sub{Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			db = sub{Err: "ping: " + err.Error()}
		} else if v, err := database.SchemaVersion(h.db.WithContext(ctx)); err != nil {
			db = sub{Err: "schema: " + err.Error()}
		} else {
			schema = v
		}
	} else {
		db = sub{Err: "gorm db is nil"}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	resp := map[string]any{
		"status":         map[string]any{"ok": db.OK},
		"uptime_sec":     int(time.Since(appStart).Seconds()),
		"schema_version": schema,
		"checks": map[string]any{
			"database": db,
		},
		"features": h.features,
		"time":     time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}
