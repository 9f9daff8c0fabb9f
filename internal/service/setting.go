package service

import (
	"context"

	"golang.org/x/sync/singleflight"

	"rp-market/internal/domain"
)

type SettingService struct {
	settings domain.SettingRepository
	sf       singleflight.Group
}

func NewSettingService(settings domain.SettingRepository) *SettingService {
	return &SettingService{settings: settings}
}

// Get collapses concurrent reads into one store round trip. The shared call
// ignores caller cancellation.
func (s *SettingService) Get(ctx context.Context) (*domain.Setting, error) {
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do("settings", func() (any, error) {
		return s.settings.Get(shared)
	})
	if err != nil {
		return nil, err
	}
	cp := *v.(*domain.Setting)
	return &cp, nil
}

func (s *SettingService) ToggleOrderButton(ctx context.Context) (*domain.Setting, error) {
	return s.settings.ToggleOrderButtonGloballyHidden(ctx)
}
