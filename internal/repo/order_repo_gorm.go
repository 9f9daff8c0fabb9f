package repo

import (
	"context"

	"gorm.io/gorm"

	"rp-market/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Omit("Product").Create(o).Error
}

func (r *OrderRepo) ListWithProducts(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := r.db.WithContext(ctx).Preload("Product").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	out := orders[:0]
	for _, o := range orders {
		if o.Product != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *OrderRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

func (r *OrderRepo) MarkRead(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[domain.Order](tx, "id = ?", id); err != nil {
			return err
		}
		if err := tx.Model(&domain.Order{}).Where("id = ?", id).Update("is_read", true).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
