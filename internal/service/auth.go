package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"rp-market/internal/core/auth"
	"rp-market/internal/domain"
	"rp-market/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

// Register always creates role=user.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.create(ctx, username, password, domain.RoleUser)
}

func (s *AuthService) create(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	u := &domain.User{ID: utils.NewID(), Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", role))
	return u, nil
}

// Login returns ErrNotFound for an unknown username and ErrInvalidCredentials
// for a bad password. Callers decide how much of that to reveal.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.Identity, time.Time, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", domain.Identity{}, time.Time{}, err
	}
	if u == nil {
		return "", domain.Identity{}, time.Time{}, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.Identity{}, time.Time{}, domain.ErrInvalidCredentials
	}
	id := u.Identity()
	tok, err := s.jwt.Issue(auth.Subject{ID: id.ID, Username: id.Username, Role: id.Role, IsAdmin: id.IsAdmin})
	if err != nil {
		return "", domain.Identity{}, time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, id, time.Now().Add(s.jwt.TTL), nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return u, nil
}

// EnsureAdmin creates username as an admin, or promotes the existing user.
// The password is only used when creating.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (u *domain.User, created bool, err error) {
	u, err = s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, false, err
	}
	if u == nil {
		u, err = s.create(ctx, username, password, domain.RoleAdmin)
		return u, err == nil, err
	}
	if u.IsAdmin() {
		return u, false, nil
	}
	if err := s.users.UpdateRole(ctx, u.ID, domain.RoleAdmin); err != nil {
		return nil, false, err
	}
	u.Role = domain.RoleAdmin
	s.log.Info("user promoted", zap.String("user_id", u.ID))
	return u, false, nil
}

func (s *AuthService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleAdmin)
}
