package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"suratjalan/pkg/notify"
	"suratjalan/pkg/slip"
)

var ErrDisabled = errors.New("daily report disabled: telegram not configured")

// Source yields the slips recorded on one day.
type Source interface {
	RecordedOn(ctx context.Context, day time.Time) ([]slip.Slip, error)
}

// Sender is the subset of notify.Dispatcher the scheduler uses.
type Sender interface {
	Enabled() bool
	SendSummary(ctx context.Context, slips []slip.Slip, label string) bool
}

// Mailer also receives the summary when configured.
type Mailer interface {
	Enabled() bool
	Send(subject, html string) error
}

type Config struct {
	Hour     int
	Minute   int
	Location *time.Location
	Timeout  time.Duration // per run; default 1m
}

type Result struct {
	Day     string       `json:"day"`
	Summary slip.Summary `json:"summary"`
	Sent    bool         `json:"sent"`
	Mailed  bool         `json:"mailed"`
	Skipped bool         `json:"skipped"` // nothing recorded that day
}

type Scheduler struct {
	cfg    Config
	src    Source
	sender Sender
	mail   Mailer
	cron   *cron.Cron
	now    func() time.Time
}

func New(cfg Config, src Source, sender Sender, mail Mailer) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	return &Scheduler{cfg: cfg, src: src, sender: sender, mail: mail, now: time.Now}
}

// Spec is the cron expression for the configured time of day.
func (s *Scheduler) Spec() string {
	return fmt.Sprintf("%d %d * * *", s.cfg.Minute, s.cfg.Hour)
}

// Start registers the daily job. It returns ErrDisabled when there is no one to send to.
func (s *Scheduler) Start() error {
	if s.sender == nil || !s.sender.Enabled() {
		return ErrDisabled
	}
	logger := cron.PrintfLogger(log.New(log.Writer(), "[report] ", log.LstdFlags))
	s.cron = cron.New(
		cron.WithLocation(s.cfg.Location),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := s.cron.AddFunc(s.Spec(), s.tick); err != nil {
		return fmt.Errorf("schedule %q: %w", s.Spec(), err)
	}
	s.cron.Start()
	log.Printf("[report] daily summary scheduled at %02d:%02d %s", s.cfg.Hour, s.cfg.Minute, s.cfg.Location)
	return nil
}

// Stop halts the schedule and waits for a running job.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	res, err := s.RunDaily(ctx, s.now())
	if err != nil {
		log.Printf("[report] run: %v", err)
		return
	}
	log.Printf("[report] %s count=%d sent=%v mailed=%v", res.Day, res.Summary.Count, res.Sent, res.Mailed)
}

// RunDaily summarises day and sends it. Nothing is sent for a day without records.
func (s *Scheduler) RunDaily(ctx context.Context, day time.Time) (Result, error) {
	day = day.In(s.cfg.Location)
	res, slips, err := s.load(ctx, day)
	if err != nil {
		return res, err
	}
	if len(slips) == 0 {
		res.Skipped = true
		return res, nil
	}

	label := notify.DailyLabel(day)
	if s.sender != nil {
		res.Sent = s.sender.SendSummary(ctx, slips, label)
	}
	if s.mail != nil && s.mail.Enabled() {
		msg := notify.SummaryMessage(slips, label, s.now().In(s.cfg.Location))
		if err := s.mail.Send(label, "<pre>"+msg+"</pre>"); err != nil {
			log.Printf("[report] mail: %v", err)
		} else {
			res.Mailed = true
		}
	}
	return res, nil
}

// Preview returns the summary and message for day without sending anything.
func (s *Scheduler) Preview(ctx context.Context, day time.Time) (Result, string, error) {
	day = day.In(s.cfg.Location)
	res, slips, err := s.load(ctx, day)
	if err != nil {
		return res, "", err
	}
	res.Skipped = len(slips) == 0
	return res, notify.SummaryMessage(slips, notify.DailyLabel(day), s.now().In(s.cfg.Location)), nil
}

func (s *Scheduler) Location() *time.Location { return s.cfg.Location }

func (s *Scheduler) load(ctx context.Context, day time.Time) (Result, []slip.Slip, error) {
	res := Result{Day: day.Format(slip.DateLayout)}
	slips, err := s.src.RecordedOn(ctx, day)
	if err != nil {
		return res, nil, fmt.Errorf("load %s: %w", res.Day, err)
	}
	res.Summary = slip.Summarize(slips)
	return res, slips, nil
}
