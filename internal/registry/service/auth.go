package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/pkg/cryptox"
	"github.com/aussiebroadwan/healthdesk/pkg/idx"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
	Now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Login checks a staff username and password and returns a signed access
// token. Unknown users and wrong passwords both give ErrInvalidCredentials
// and cost the same argon2 work.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		_ = cryptox.VerifyPassword(password, s.dummy())
		l.Info("login for unknown user", "username", username)
		return "", ErrInvalidCredentials
	case err != nil:
		return "", err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		l.Info("login with wrong password", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(user.ID, user.Username, jwtx.StaffScopes, ttl, s.Issuer, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign access token", "error", err)
		return "", err
	}

	l.Info("staff login", "user_id", user.ID)
	return token, nil
}

// dummy is a valid hash to verify against when the user does not exist.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = cryptox.HashPassword("not-a-real-password")
	})
	return s.dummyHash
}

// SeedStaff creates the staff account username unless it already exists.
// It reports whether an account was created.
func (s *AuthService) SeedStaff(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, err
	}

	now := s.now()
	err = s.Store.Users().CreateUser(ctx, domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}
