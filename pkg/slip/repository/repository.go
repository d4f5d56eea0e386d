package repository

import (
	"context"

	"suratjalan/pkg/slip"
)

type Repo interface {
	Create(ctx context.Context, s *slip.Slip) error
	// Replace overwrites every mutable column of an existing row in one transaction.
	Replace(ctx context.Context, id uint, apply func(cur *slip.Slip)) (*slip.Slip, error)
	FindByID(ctx context.Context, id uint) (*slip.Slip, error)
	DeleteByDocumentNumber(ctx context.Context, doc string) (int64, error)
	List(ctx context.Context, f slip.Filter) ([]slip.Slip, error)
}
