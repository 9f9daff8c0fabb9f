package repo

import (
	"context"

	"gorm.io/gorm"

	"rp-market/internal/domain"
)

type SaleRepo struct{ db *gorm.DB }

func NewSaleRepo(db *gorm.DB) *SaleRepo { return &SaleRepo{db: db} }

func (r *SaleRepo) Create(ctx context.Context, s *domain.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SaleRepo) List(ctx context.Context) ([]domain.Sale, error) {
	var ss []domain.Sale
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ss).Error
	return ss, err
}
