package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rp-market/internal/domain"
)

type SettingRepo struct{ db *gorm.DB }

func NewSettingRepo(db *gorm.DB) *SettingRepo { return &SettingRepo{db: db} }

// ensure inserts the defaults row unless it already exists; racing callers both succeed.
func (r *SettingRepo) ensure(tx *gorm.DB) (*domain.Setting, error) {
	s, err := first[domain.Setting](tx, "id = ?", domain.SettingID)
	if err != nil || s != nil {
		return s, err
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.Setting{ID: domain.SettingID}).Error; err != nil {
		return nil, err
	}
	var out domain.Setting
	if err := tx.First(&out, "id = ?", domain.SettingID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SettingRepo) Get(ctx context.Context) (*domain.Setting, error) {
	return r.ensure(r.db.WithContext(ctx))
}

func (r *SettingRepo) ToggleOrderButtonGloballyHidden(ctx context.Context) (*domain.Setting, error) {
	var out domain.Setting
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.ensure(tx); err != nil {
			return err
		}
		if err := tx.Model(&domain.Setting{}).Where("id = ?", domain.SettingID).
			Update("is_order_button_globally_hidden", gorm.Expr("NOT is_order_button_globally_hidden")).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", domain.SettingID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
