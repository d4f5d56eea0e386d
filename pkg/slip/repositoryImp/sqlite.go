package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"suratjalan/pkg/slip"
	"suratjalan/pkg/slip/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(ctx context.Context, s *slip.Slip) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sqliteRepo) Replace(ctx context.Context, id uint, apply func(cur *slip.Slip)) (*slip.Slip, error) {
	var out slip.Slip
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &slip.NotFoundError{ID: id}
			}
			return err
		}
		recordedAt := out.RecordedAt
		apply(&out)
		out.ID, out.RecordedAt = id, recordedAt
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) FindByID(ctx context.Context, id uint) (*slip.Slip, error) {
	var out slip.Slip
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &slip.NotFoundError{ID: id}
		}
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) DeleteByDocumentNumber(ctx context.Context, doc string) (int64, error) {
	res := r.db.WithContext(ctx).Where("nomor_do = ?", doc).Delete(&slip.Slip{})
	return res.RowsAffected, res.Error
}

func (r *sqliteRepo) List(ctx context.Context, f slip.Filter) ([]slip.Slip, error) {
	q := r.db.WithContext(ctx).Model(&slip.Slip{})
	if f.Plate != "" {
		q = q.Where(`LOWER(nomor_polisi) LIKE ? ESCAPE '\'`, contains(f.Plate))
	}
	if f.DocumentNumber != "" {
		q = q.Where(`LOWER(nomor_do) LIKE ? ESCAPE '\'`, contains(f.DocumentNumber))
	}
	if f.RecordedDate != "" {
		q = q.Where(`tanggal_input LIKE ? ESCAPE '\'`, escapeLike(f.RecordedDate)+"%")
	}
	order := "tanggal_input desc, id desc"
	if f.Ascending {
		order = "tanggal_input asc, id asc"
	}
	var list []slip.Slip
	return list, q.Order(order).Find(&list).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func contains(s string) string { return "%" + escapeLike(strings.ToLower(s)) + "%" }
