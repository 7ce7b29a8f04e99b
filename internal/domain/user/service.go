package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/pocket-shop/internal/infrastructure/store"
	"go.uber.org/zap"
)

var (
	ErrNoUserData         = errors.New("no user data found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrStorageUnavailable = errors.New("an error occurred, please try again")
)

// Service bridges the registration and login forms to the credential store.
type Service struct {
	store  store.KeyValueStore
	logger *zap.Logger
}

func NewService(kv store.KeyValueStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: kv, logger: logger}
}

// Register validates the form and overwrites the stored record.
// Nothing is written when validation fails.
func (s *Service) Register(ctx context.Context, form RegisterForm) (*Credential, error) {
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	cred := Credential{
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
		UserName: strings.TrimSpace(form.UserName),
	}
	data, err := cred.Encode()
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		s.logger.Error("Failed to save credential record", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("User registered", zap.String("user_name", cred.UserName))
	return &cred, nil
}

// Login validates the form and compares it with the stored record.
// Email and password mismatches return distinct errors.
func (s *Service) Login(ctx context.Context, form LoginForm) (*Credential, error) {
	if verr := form.Validate(); verr != nil {
		return nil, verr
	}

	stored, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if stored.Email != strings.TrimSpace(form.Email) {
		return nil, ErrInvalidEmail
	}
	if stored.Password != strings.TrimSpace(form.Password) {
		return nil, ErrInvalidPassword
	}

	s.logger.Info("User logged in", zap.String("user_name", stored.UserName))
	return stored, nil
}

// Current returns the stored record, ErrNoUserData when there is none, or
// ErrStorageUnavailable when it cannot be read.
func (s *Service) Current(ctx context.Context) (*Credential, error) {
	data, found, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error("Failed to read credential record", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !found {
		return nil, ErrNoUserData
	}

	cred, ok, err := DecodeCredential(data)
	if err != nil {
		s.logger.Error("Stored credential record is unreadable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return nil, ErrNoUserData
	}
	return &cred, nil
}
