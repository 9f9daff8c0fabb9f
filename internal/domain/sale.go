package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Sale is a saved margin-calculator run. Rows are write-once.
type Sale struct {
	ID          string                       `gorm:"primaryKey;size:36" json:"id"`
	Name        string                       `gorm:"size:191;not null" json:"name"`
	Description string                       `gorm:"type:text" json:"description,omitempty"`
	Values      datatypes.JSONSlice[float64] `gorm:"not null" json:"values"`
	ProfitRate  float64                      `gorm:"not null" json:"profitRate"`
	TaxRate     float64                      `gorm:"not null" json:"taxRate"`
	TotalCost   float64                      `gorm:"not null" json:"totalCost"`
	ProfitPrice float64                      `gorm:"not null" json:"profitPrice"`
	Tax         float64                      `gorm:"not null" json:"tax"`
	FinalPrice  float64                      `gorm:"not null" json:"finalPrice"`
	CreatedAt   time.Time                    `gorm:"index" json:"createdAt"`
}

type SaleRepository interface {
	Create(ctx context.Context, s *Sale) error
	List(ctx context.Context) ([]Sale, error)
}
