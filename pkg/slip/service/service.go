package service

import (
	"context"
	"time"

	"suratjalan/pkg/slip"
)

type Service interface {
	Create(ctx context.Context, in slip.Input) (*slip.Slip, error)
	Update(ctx context.Context, id uint, in slip.Input) (*slip.Slip, error)
	Get(ctx context.Context, id uint) (*slip.Slip, error)
	DeleteByDocumentNumber(ctx context.Context, doc string) (int64, error)
	Query(ctx context.Context, f slip.Filter) ([]slip.Slip, error)
	RecordedOn(ctx context.Context, day time.Time) ([]slip.Slip, error)
}

// Announcer is told about every committed create. Its result never affects the write.
type Announcer interface {
	AnnounceCreated(ctx context.Context, s slip.Slip) bool
}
