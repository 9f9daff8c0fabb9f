package domain

import (
	"context"
	"time"
)

type NoteStatus string

const (
	NotePending    NoteStatus = "pending"
	NoteInProgress NoteStatus = "in_progress"
	NoteDone       NoteStatus = "done"
)

func (s NoteStatus) Valid() bool {
	switch s {
	case NotePending, NoteInProgress, NoteDone:
		return true
	}
	return false
}

const NoteContentMax = 900

type Note struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"size:191;not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Status    NoteStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	UserID    string     `gorm:"size:36;not null;index" json:"userId"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	// ListByOwner is newest first; an empty status lists every status.
	ListByOwner(ctx context.Context, userID string, status NoteStatus) ([]Note, error)
	UpdateStatus(ctx context.Context, id, userID string, status NoteStatus) (*Note, error)
	Delete(ctx context.Context, id string) error
}
