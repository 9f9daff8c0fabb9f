package domain

import (
	"context"
	"time"
)

// BackDoorAccount is a secondary credential set managed by admins. It shares
// nothing with User: separate table, separate token issuer.
type BackDoorAccount struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	Username     string          `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string          `gorm:"size:100;not null" json:"-"`
	Note         string          `gorm:"type:text" json:"note,omitempty"`
	IsActive     bool            `gorm:"not null" json:"isActive"`
	LastLogin    *time.Time      `json:"lastLogin,omitempty"`
	LoginHistory []BackDoorLogin `gorm:"foreignKey:AccountID" json:"loginHistory"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type BackDoorLogin struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	AccountID string    `gorm:"size:36;not null;index" json:"-"`
	LoginDate time.Time `gorm:"not null" json:"loginDate"`
}

type BackDoorRepository interface {
	Create(ctx context.Context, a *BackDoorAccount) error
	FindByUsername(ctx context.Context, username string) (*BackDoorAccount, error)
	// List is newest first with login history preloaded (newest entry first).
	List(ctx context.Context) ([]BackDoorAccount, error)
	ToggleActive(ctx context.Context, id string) (*BackDoorAccount, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
	CountActive(ctx context.Context) (int64, error)
}
