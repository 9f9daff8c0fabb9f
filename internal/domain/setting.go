package domain

import "context"

// SettingID is the primary key of the single settings row.
const SettingID uint = 1

type Setting struct {
	ID                          uint `gorm:"primaryKey;autoIncrement:false" json:"-"`
	IsOrderButtonGloballyHidden bool `gorm:"not null;default:false" json:"isOrderButtonGloballyHidden"`
}

// SettingRepository creates the row with defaults on first access and never
// reports it missing.
type SettingRepository interface {
	Get(ctx context.Context) (*Setting, error)
	ToggleOrderButtonGloballyHidden(ctx context.Context) (*Setting, error)
}
