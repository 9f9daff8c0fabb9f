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

// BackDoorPasswordDigits is the length of generated one-time-reveal passwords.
const BackDoorPasswordDigits = 6

type BackDoorService struct {
	accounts domain.BackDoorRepository
	jwt      *auth.JWTer
	log      *zap.Logger
	now      func() time.Time
}

// NewBackDoorService takes its own JWTer; its issuer must differ from the
// primary one so the two token kinds never cross-validate.
func NewBackDoorService(accounts domain.BackDoorRepository, jwt *auth.JWTer, log *zap.Logger) *BackDoorService {
	return &BackDoorService{accounts: accounts, jwt: jwt, log: log, now: time.Now}
}

// Create returns the account and its plaintext password. The password is not
// retrievable afterwards.
func (s *BackDoorService) Create(ctx context.Context, username, note string) (*domain.BackDoorAccount, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", invalid("username is required")
	}
	pw, hash, err := newBackDoorPassword()
	if err != nil {
		return nil, "", err
	}
	a := &domain.BackDoorAccount{
		ID:           utils.NewID(),
		Username:     username,
		PasswordHash: hash,
		Note:         strings.TrimSpace(note),
		IsActive:     true,
		LoginHistory: []domain.BackDoorLogin{},
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, "", fmt.Errorf("create backdoor account %q: %w", username, err)
	}
	s.log.Info("backdoor account created", zap.String("account_id", a.ID))
	return a, pw, nil
}

func newBackDoorPassword() (plain, hash string, err error) {
	plain, err = utils.RandomDigits(BackDoorPasswordDigits)
	if err != nil {
		return "", "", fmt.Errorf("generate password: %w", err)
	}
	hash, err = utils.HashPassword(plain)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	return plain, hash, nil
}

// Login fails with ErrInvalidCredentials or ErrInactive. A success is recorded
// in the account's login history.
func (s *BackDoorService) Login(ctx context.Context, username, password string) (string, *domain.BackDoorAccount, error) {
	a, err := s.accounts.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if a == nil || !utils.CheckPassword(password, a.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !a.IsActive {
		return "", nil, domain.ErrInactive
	}
	at := s.now().UTC()
	if err := s.accounts.RecordLogin(ctx, a.ID, at); err != nil {
		return "", nil, fmt.Errorf("record backdoor login: %w", err)
	}
	a.LastLogin = &at
	tok, err := s.jwt.Issue(auth.Subject{ID: a.ID, Username: a.Username, Role: "backdoor"})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, a, nil
}

func (s *BackDoorService) List(ctx context.Context) ([]domain.BackDoorAccount, error) {
	return s.accounts.List(ctx)
}

func (s *BackDoorService) ToggleActive(ctx context.Context, id string) (*domain.BackDoorAccount, error) {
	return s.accounts.ToggleActive(ctx, id)
}

func (s *BackDoorService) Delete(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete backdoor account %s: %w", id, err)
	}
	return nil
}

// ResetPassword replaces the password and returns the new plaintext once.
func (s *BackDoorService) ResetPassword(ctx context.Context, id string) (string, error) {
	pw, hash, err := newBackDoorPassword()
	if err != nil {
		return "", err
	}
	if err := s.accounts.UpdatePassword(ctx, id, hash); err != nil {
		return "", fmt.Errorf("reset backdoor password %s: %w", id, err)
	}
	s.log.Info("backdoor password reset", zap.String("account_id", id))
	return pw, nil
}
