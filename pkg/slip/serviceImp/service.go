package serviceImp

import (
	"context"
	"fmt"
	"log"
	"time"

	"suratjalan/pkg/slip"
	"suratjalan/pkg/slip/repository"
	svc "suratjalan/pkg/slip/service"
)

type service struct {
	repo     repository.Repo
	announce svc.Announcer
	loc      *time.Location
	now      func() time.Time
}

type Option func(*service)

// WithAnnouncer sends a notice after each successful create.
func WithAnnouncer(a svc.Announcer) Option { return func(s *service) { s.announce = a } }

func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

func New(r repository.Repo, loc *time.Location, opts ...Option) svc.Service {
	if loc == nil {
		loc = time.Local
	}
	s := &service{repo: r, loc: loc, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, in slip.Input) (*slip.Slip, error) {
	now := s.now().In(s.loc)
	in = in.Normalize(now)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	doc, err := slip.DocumentNumber(in.EntryDate, in.EntryTime)
	if err != nil {
		return nil, &slip.ValidationError{Violations: []string{err.Error()}}
	}
	in.DocumentNumber = doc
	in.Approver = "" // signed on paper, set later through update

	var out slip.Slip
	in.Apply(&out)
	out.RecordedAt = now.Format(slip.TimestampLayout)
	if err := s.repo.Create(ctx, &out); err != nil {
		return nil, fmt.Errorf("create slip: %w", err)
	}
	log.Printf("[slip] created id=%d doc=%s plate=%s net=%.0f", out.ID, out.DocumentNumber, out.Plate, out.Net)

	if s.announce != nil && !s.announce.AnnounceCreated(ctx, out) {
		log.Printf("[slip] announce id=%d not delivered", out.ID)
	}
	return &out, nil
}

func (s *service) Update(ctx context.Context, id uint, in slip.Input) (*slip.Slip, error) {
	in = in.Normalize(s.now().In(s.loc))
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.DocumentNumber == "" {
		doc, err := slip.DocumentNumber(in.EntryDate, in.EntryTime)
		if err != nil {
			return nil, &slip.ValidationError{Violations: []string{err.Error()}}
		}
		in.DocumentNumber = doc
	}
	out, err := s.repo.Replace(ctx, id, in.Apply)
	if err != nil {
		return nil, fmt.Errorf("update slip %d: %w", id, err)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*slip.Slip, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) DeleteByDocumentNumber(ctx context.Context, doc string) (int64, error) {
	n, err := s.repo.DeleteByDocumentNumber(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("delete %q: %w", doc, err)
	}
	log.Printf("[slip] deleted doc=%s rows=%d", doc, n)
	return n, nil
}

func (s *service) Query(ctx context.Context, f slip.Filter) ([]slip.Slip, error) {
	return s.repo.List(ctx, f)
}

func (s *service) RecordedOn(ctx context.Context, day time.Time) ([]slip.Slip, error) {
	return s.repo.List(ctx, slip.Filter{RecordedDate: day.In(s.loc).Format(slip.DateLayout)})
}
