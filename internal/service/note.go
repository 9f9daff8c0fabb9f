package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"rp-market/internal/domain"
	"rp-market/pkg/utils"
)

type NoteService struct {
	notes domain.NoteRepository
}

func NewNoteService(notes domain.NoteRepository) *NoteService { return &NoteService{notes: notes} }

func (s *NoteService) Create(ctx context.Context, owner, title, content string, status domain.NoteStatus) (*domain.Note, error) {
	title = strings.TrimSpace(title)
	switch {
	case owner == "":
		return nil, invalid("owner is required")
	case title == "":
		return nil, invalid("title is required")
	case strings.TrimSpace(content) == "":
		return nil, invalid("content is required")
	case utf8.RuneCountInString(content) > domain.NoteContentMax:
		return nil, invalid("content exceeds %d characters", domain.NoteContentMax)
	}
	if status == "" {
		status = domain.NotePending
	}
	if !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	n := &domain.Note{ID: utils.NewID(), Title: title, Content: content, Status: status, UserID: owner}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (s *NoteService) List(ctx context.Context, owner string, status domain.NoteStatus) ([]domain.Note, error) {
	if status != "" && !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	return s.notes.ListByOwner(ctx, owner, status)
}

// UpdateStatus only touches notes owned by owner; others read as missing.
func (s *NoteService) UpdateStatus(ctx context.Context, id, owner string, status domain.NoteStatus) (*domain.Note, error) {
	if !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	return s.notes.UpdateStatus(ctx, id, owner, status)
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}
