package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type ProductType string

const (
	ProductNormal ProductType = "normal"
	ProductCar    ProductType = "car"
)

func (t ProductType) Valid() bool { return t == ProductNormal || t == ProductCar }

type ProductImage struct {
	URL   string `json:"url"`
	Order int    `json:"order"`
}

// Product stores Price as the effective (post-discount) price. OriginalPrice is
// only written when a discount is applied and is never recomputed on read.
type Product struct {
	ID                  string                            `gorm:"primaryKey;size:36" json:"id"`
	Name                string                            `gorm:"size:191;not null;index" json:"name"`
	Price               float64                           `gorm:"not null" json:"price"`
	OriginalPrice       *float64                          `json:"originalPrice,omitempty"`
	DiscountPercentage  float64                           `gorm:"not null;default:0" json:"discountPercentage"`
	Stock               int                               `gorm:"not null" json:"stock"`
	Description         string                            `gorm:"type:text;not null" json:"description"`
	ImageURL            string                            `gorm:"size:1024;not null" json:"imageUrl"`
	Type                ProductType                       `gorm:"size:16;not null;default:normal" json:"type"`
	Images              datatypes.JSONSlice[ProductImage] `json:"images"`
	ViewCount           int64                             `gorm:"not null;default:0;index" json:"viewCount"`
	IsHidden            bool                              `gorm:"not null;default:false" json:"isHidden"`
	IsOrderButtonHidden bool                              `gorm:"not null;default:false" json:"isOrderButtonHidden"`
	CreatedAt           time.Time                         `gorm:"index" json:"createdAt"`
	UpdatedAt           time.Time                         `json:"updatedAt"`
}

// Visible reports whether the product shows up on the storefront.
func (p *Product) Visible() bool { return !p.IsHidden && p.Stock > 0 }

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// Update applies column->value pairs and returns the fresh row, ErrNotFound if absent.
	Update(ctx context.Context, id string, fields map[string]any) (*Product, error)
	// List returns every product when showAll is set, otherwise only visible ones.
	List(ctx context.Context, showAll bool) ([]Product, error)
	// SearchVisible matches name case-insensitively; limit <= 0 means no limit.
	SearchVisible(ctx context.Context, q string, limit int) ([]Product, error)
	Popular(ctx context.Context, limit int) ([]Product, error)
	IncrementViews(ctx context.Context, id string) (*Product, error)
	ToggleHidden(ctx context.Context, id string) (*Product, error)
	ToggleOrderButtonHidden(ctx context.Context, id string) (*Product, error)
	CountVisible(ctx context.Context) (int64, error)
}
