// Command report sends, previews or exports one day's weighing records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"suratjalan/config"
	"suratjalan/database"
	"suratjalan/pkg/export"
	"suratjalan/pkg/mailer"
	"suratjalan/pkg/notify"
	"suratjalan/pkg/render"
	"suratjalan/pkg/report"
	slipRepoImp "suratjalan/pkg/slip/repositoryImp"
	slipSvcImp "suratjalan/pkg/slip/serviceImp"
)

func main() {
	var (
		date   = flag.String("date", "", "day to report, YYYY-MM-DD (default today)")
		dryRun = flag.Bool("dry-run", false, "print the message instead of sending it")
		pdfDir = flag.String("pdf-dir", "", "write the day's slips grouped by plate into this directory")
		xlsx   = flag.String("xlsx", "", "write the day's slips to this spreadsheet")
	)
	flag.Parse()

	cfg := config.Load()
	loc := cfg.Location()

	day := time.Now().In(loc)
	if *date != "" {
		d, err := time.ParseInLocation("2006-01-02", *date, loc)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *date, err)
		}
		day = d
	}

	db, err := database.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer database.Close(db)
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	svc := slipSvcImp.New(slipRepoImp.New(db), loc)
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
	sched := report.New(report.Config{Location: loc}, svc, tg, mail)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *pdfDir != "" || *xlsx != "" {
		slips, err := svc.RecordedOn(ctx, day)
		if err != nil {
			log.Fatalf("load: %v", err)
		}
		if *pdfDir != "" && len(slips) > 0 {
			if err := os.MkdirAll(*pdfDir, 0o755); err != nil {
				log.Fatalf("mkdir: %v", err)
			}
			groups, err := render.New(render.Options{FontDir: cfg.FontDir, Compress: cfg.PDFCompress}).Grouped(slips, render.ByPlate)
			if err != nil {
				log.Fatalf("render: %v", err)
			}
			for _, g := range groups {
				path := filepath.Join(*pdfDir, g.FileName())
				if err := g.Doc.WriteFile(path); err != nil {
					log.Fatalf("write %s: %v", path, err)
				}
				log.Printf("[report] wrote %s (%d pages)", path, g.Doc.Pages)
			}
		}
		if *xlsx != "" {
			if err := export.WriteFile(*xlsx, slips); err != nil {
				log.Fatalf("export: %v", err)
			}
			log.Printf("[report] wrote %s (%d rows)", *xlsx, len(slips))
		}
	}

	if *dryRun {
		res, msg, err := sched.Preview(ctx, day)
		if err != nil {
			log.Fatalf("preview: %v", err)
		}
		if res.Skipped {
			fmt.Printf("no records on %s\n", res.Day)
			return
		}
		fmt.Println(notify.PlainText(msg))
		return
	}

	res, err := sched.RunDaily(ctx, day)
	if err != nil {
		log.Fatalf("report: %v", err)
	}
	switch {
	case res.Skipped:
		fmt.Printf("no records on %s, nothing sent\n", res.Day)
	case !res.Sent:
		fmt.Fprintf(os.Stderr, "summary for %s was not delivered\n", res.Day)
		os.Exit(1)
	default:
		fmt.Printf("sent summary for %s: %d records, %d vehicles\n", res.Day, res.Summary.Count, res.Summary.Vehicles)
	}
}
