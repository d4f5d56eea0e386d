package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	BackupDir   string
	FontDir     string
	PDFCompress bool

	TelegramToken  string
	TelegramChatID string
	TelegramAPIURL string
	NotifyTimeout  time.Duration

	ReportHour   int
	ReportMinute int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPTo       []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v, err := strconv.Atoi(get(k, "")); err == nil {
			return v
		}
		return def
	}

	timeout, err := time.ParseDuration(get("NOTIFY_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		Timezone: get("TZ", "Asia/Jakarta"),
		DBPath:   get("DB_PATH", "surat_jalan.db"),

		BackupDir:   get("BACKUP_DIR", "backup"),
		FontDir:     get("FONT_DIR", "fonts"),
		PDFCompress: get("PDF_COMPRESS", "true") == "true",

		TelegramToken:  get("TELEGRAM_TOKEN", ""),
		TelegramChatID: get("TELEGRAM_CHAT_ID", ""),
		TelegramAPIURL: get("TELEGRAM_API_URL", "https://api.telegram.org"),
		NotifyTimeout:  timeout,

		ReportHour:   getInt("REPORT_HOUR", 17),
		ReportMinute: getInt("REPORT_MINUTE", 0),

		SMTPHost:     get("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 465),
		SMTPUser:     get("SMTP_USER", ""),
		SMTPPassword: get("SMTP_PASSWORD", ""),
		SMTPFrom:     get("SMTP_FROM", ""),
		SMTPTo:       splitList(get("SMTP_TO", "")),
	}
	log.Printf("[cfg] %+v", cfg.masked())
	return cfg
}

// Location resolves Timezone, falling back to UTC+7 when the tz database is missing.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[cfg] load location %q: %v, using UTC+7", c.Timezone, err)
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func (c AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

func (c AppConfig) masked() AppConfig {
	out := c
	if out.TelegramToken != "" {
		out.TelegramToken = "***"
	}
	if out.SMTPPassword != "" {
		out.SMTPPassword = "***"
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
