package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rp-market/internal/domain"
)

type BackDoorRepo struct{ db *gorm.DB }

func NewBackDoorRepo(db *gorm.DB) *BackDoorRepo { return &BackDoorRepo{db: db} }

func (r *BackDoorRepo) Create(ctx context.Context, a *domain.BackDoorAccount) error {
	if err := r.db.WithContext(ctx).Omit("LoginHistory").Create(a).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BackDoorRepo) FindByUsername(ctx context.Context, username string) (*domain.BackDoorAccount, error) {
	return first[domain.BackDoorAccount](r.db.WithContext(ctx), "username = ?", username)
}

func newestLoginsFirst(db *gorm.DB) *gorm.DB { return db.Order("login_date DESC") }

func (r *BackDoorRepo) List(ctx context.Context) ([]domain.BackDoorAccount, error) {
	var as []domain.BackDoorAccount
	err := r.db.WithContext(ctx).
		Preload("LoginHistory", newestLoginsFirst).
		Order("created_at DESC").
		Find(&as).Error
	return as, err
}

func (r *BackDoorRepo) ToggleActive(ctx context.Context, id string) (*domain.BackDoorAccount, error) {
	var out *domain.BackDoorAccount
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := flip[domain.BackDoorAccount](tx, id, "is_active")
		out = a
		return err
	})
	return out, err
}

func (r *BackDoorRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[domain.BackDoorAccount](tx, "id = ?", id); err != nil {
			return err
		}
		return tx.Model(&domain.BackDoorAccount{}).Where("id = ?", id).Update("password_hash", hash).Error
	})
}

func (r *BackDoorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&domain.BackDoorAccount{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("account_id = ?", id).Delete(&domain.BackDoorLogin{}).Error
	})
}

func (r *BackDoorRepo) RecordLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&domain.BackDoorLogin{AccountID: id, LoginDate: at}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.BackDoorAccount{}).Where("id = ?", id).Update("last_login", at).Error
	})
}

func (r *BackDoorRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BackDoorAccount{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
