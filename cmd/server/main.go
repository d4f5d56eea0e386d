package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"suratjalan/config"
	"suratjalan/database"
	"suratjalan/router"

	// Slip
	slipCtrlImp "suratjalan/pkg/slip/controllerImp"
	slipRepoImp "suratjalan/pkg/slip/repositoryImp"
	slipSvcImp "suratjalan/pkg/slip/serviceImp"

	// Documents, notifications, reports
	"suratjalan/pkg/mailer"
	"suratjalan/pkg/notify"
	"suratjalan/pkg/render"
	"suratjalan/pkg/report"
	reportCtrlImp "suratjalan/pkg/report/controllerImp"

	// Health
	healthCtrlImp "suratjalan/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	loc := cfg.Location()

	// 2) Snapshot before anything touches the file
	if path, err := database.Snapshot(cfg.DBPath, cfg.BackupDir, time.Now().In(loc)); err != nil {
		log.Printf("WARN: snapshot: %v", err)
	} else if path != "" {
		log.Printf("[db] snapshot %s", path)
	}

	// 3) DB (sqlite) + schema
	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	// 4) Notifications
	tg := notify.New(notify.Config{
		Token:   cfg.TelegramToken,
		ChatID:  cfg.TelegramChatID,
		BaseURL: cfg.TelegramAPIURL,
		Timeout: cfg.NotifyTimeout,
	}, loc)
	mail := mailer.New(mailer.Config{
		Host: cfg.SMTPHost, Port: cfg.SMTPPort,
		User: cfg.SMTPUser, Password: cfg.SMTPPassword,
		From: cfg.SMTPFrom, To: cfg.SMTPTo,
	})

	// 5) Services
	var opts []slipSvcImp.Option
	if cfg.TelegramEnabled() {
		opts = append(opts, slipSvcImp.WithAnnouncer(tg))
	} else {
		log.Printf("WARN: TELEGRAM_TOKEN / TELEGRAM_CHAT_ID not set, notifications off")
	}
	slipSvc := slipSvcImp.New(slipRepoImp.New(db), loc, opts...)
	renderer := render.New(render.Options{FontDir: cfg.FontDir, Compress: cfg.PDFCompress})

	sched := report.New(report.Config{
		Hour: cfg.ReportHour, Minute: cfg.ReportMinute, Location: loc,
	}, slipSvc, tg, mail)
	if err := sched.Start(); err != nil {
		log.Printf("WARN: %v", err)
	}

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())

	hCtrl := healthCtrlImp.NewHealthCtrl(db, map[string]bool{
		"telegram": cfg.TelegramEnabled(),
		"mail":     mail.Enabled(),
	})
	router.New(
		e,
		slipCtrlImp.New(slipSvc, renderer),
		reportCtrlImp.New(sched),
		hCtrl,
	)

	// 7) Start
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("WARN: shutdown: %v", err)
	}
	sched.Stop()
	database.Close(db)
}
