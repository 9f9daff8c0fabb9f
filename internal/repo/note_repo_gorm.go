package repo

import (
	"context"

	"gorm.io/gorm"

	"rp-market/internal/domain"
)

type NoteRepo struct{ db *gorm.DB }

func NewNoteRepo(db *gorm.DB) *NoteRepo { return &NoteRepo{db: db} }

func (r *NoteRepo) Create(ctx context.Context, n *domain.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NoteRepo) ListByOwner(ctx context.Context, userID string, status domain.NoteStatus) ([]domain.Note, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ns []domain.Note
	err := q.Order("created_at DESC").Find(&ns).Error
	return ns, err
}

func (r *NoteRepo) UpdateStatus(ctx context.Context, id, userID string, status domain.NoteStatus) (*domain.Note, error) {
	var out domain.Note
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[domain.Note](tx, "id = ? AND user_id = ?", id, userID); err != nil {
			return err
		}
		if err := tx.Model(&domain.Note{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
