// Package tokenstore holds the desk's bearer token in one of two scopes.
//
// A Store pairs a durable Backend (survives restarts: a file or Redis key)
// with a session Backend (dies with the process). SetToken with remember
// writes the durable backend, otherwise the session one, and always clears
// the other so a token never lives in both. Token reads durable first.
//
// A Store is built once by the caller and passed to whatever needs it; the
// package keeps no instance of its own.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoToken is returned by a Backend that holds nothing.
var ErrNoToken = errors.New("tokenstore: no token")

// Backend is one storage scope for a single token.
type Backend interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Store combines a durable and a session-scoped backend.
type Store struct {
	Durable Backend
	Session Backend
}

// New returns a Store over durable and session. A nil durable backend makes
// remember=true behave like a session login.
func New(durable, session Backend) *Store {
	if session == nil {
		session = NewMemoryBackend()
	}
	return &Store{Durable: durable, Session: session}
}

// SetToken stores token in the durable backend when remember is set,
// otherwise in the session backend, then clears the other one.
func (s *Store) SetToken(ctx context.Context, token string, remember bool) error {
	if token == "" {
		return errors.New("tokenstore: empty token")
	}

	target, other := s.Session, s.Durable
	if remember && s.Durable != nil {
		target, other = s.Durable, s.Session
	}

	if err := target.Save(ctx, token); err != nil {
		return fmt.Errorf("tokenstore: save: %w", err)
	}
	if other != nil {
		if err := other.Clear(ctx); err != nil {
			return fmt.Errorf("tokenstore: clear other scope: %w", err)
		}
	}
	return nil
}

// Token returns the durable token if there is one, else the session token.
// Backend failures are treated as "no token"; the caller will be asked to
// log in again, which is the only recovery available anyway.
func (s *Store) Token(ctx context.Context) string {
	for _, b := range []Backend{s.Durable, s.Session} {
		if b == nil {
			continue
		}
		if tok, err := b.Load(ctx); err == nil && tok != "" {
			return tok
		}
	}
	return ""
}

// HasToken reports whether either scope holds a token.
func (s *Store) HasToken(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// Clear removes the token from both scopes. Called on logout and whenever
// the registry rejects the token.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, b := range []Backend{s.Durable, s.Session} {
		if b == nil {
			continue
		}
		if err := b.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
