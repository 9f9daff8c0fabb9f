package domain

import (
	"context"
	"time"
)

type Order struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID   string    `gorm:"size:36;not null;index" json:"productId"`
	Product     *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	FullName    string    `gorm:"size:128;not null" json:"fullName"`
	PhoneNumber string    `gorm:"size:32;not null" json:"phoneNumber"`
	Note        string    `gorm:"type:text" json:"note,omitempty"`
	IsRead      bool      `gorm:"not null;default:false;index" json:"isRead"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	// ListWithProducts is newest first; orders whose product no longer resolves are dropped.
	ListWithProducts(ctx context.Context) ([]Order, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id string) (*Order, error)
	Delete(ctx context.Context, id string) error
}
