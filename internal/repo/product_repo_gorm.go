package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"rp-market/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_hidden = ? AND stock > ?", false, 0)
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return first[domain.Product](r.db.WithContext(ctx), "id = ?", id)
}

func (r *ProductRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Product, error) {
	var out domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist[domain.Product](tx, "id = ?", id); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&domain.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) List(ctx context.Context, showAll bool) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if !showAll {
		q = q.Scopes(visible)
	}
	var ps []domain.Product
	err := q.Order("created_at ASC").Order("id ASC").Find(&ps).Error
	return ps, err
}

// SearchVisible streams products in store order and matches names in Go.
// SQL LOWER folds only ASCII on sqlite, so case folding cannot be left to the store.
func (r *ProductRepo) SearchVisible(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	db := r.db.WithContext(ctx)
	rows, err := db.Model(&domain.Product{}).
		Order("created_at ASC").Order("id ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	needle := foldKey(q)
	ps := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := db.ScanRows(rows, &p); err != nil {
			return nil, err
		}
		if !p.Visible() || !strings.Contains(foldKey(p.Name), needle) {
			continue
		}
		ps = append(ps, p)
		if limit > 0 && len(ps) == limit {
			break
		}
	}
	return ps, rows.Err()
}

func (r *ProductRepo) Popular(ctx context.Context, limit int) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("view_count > ?", 0).
		Order("view_count DESC").Order("created_at ASC").
		Limit(limit).
		Find(&ps).Error
	return ps, err
}

// IncrementViews bumps the counter in SQL so parallel views are never lost.
func (r *ProductRepo) IncrementViews(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Product{}).Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) ToggleHidden(ctx context.Context, id string) (*domain.Product, error) {
	var out *domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := flip[domain.Product](tx, id, "is_hidden")
		out = p
		return err
	})
	return out, err
}

func (r *ProductRepo) ToggleOrderButtonHidden(ctx context.Context, id string) (*domain.Product, error) {
	var out *domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := flip[domain.Product](tx, id, "is_order_button_hidden")
		out = p
		return err
	})
	return out, err
}

func (r *ProductRepo) CountVisible(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Scopes(visible).Count(&n).Error
	return n, err
}
