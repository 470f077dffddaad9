// Package forms holds the register client, create program and enroll
// client forms.
//
// Each form keeps a draft. Submit validates it locally, refuses to run
// without a session token, and calls the registry once. Success clears the
// draft and records a confirmation; failure keeps the draft and records the
// message to show.
package forms

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotLoggedIn means submission is disabled for lack of a token.
	ErrNotLoggedIn = errors.New("forms: not logged in")

	// ErrInvalid means the draft failed local validation.
	ErrInvalid = errors.New("forms: invalid input")
)

// TokenChecker reports whether a session token is present.
type TokenChecker interface {
	HasToken(ctx context.Context) bool
}

// status is the feedback shared by every form.
type status struct {
	err       string
	notice    string
	createdID string
}

// Err is the banner text from the last failed submit.
func (s *status) Err() string { return s.err }

// Notice is the confirmation from the last successful submit.
func (s *status) Notice() string { return s.notice }

// CreatedID is the id the registry assigned on the last success, if any.
func (s *status) CreatedID() string { return s.createdID }

func (s *status) reset() {
	s.err, s.notice, s.createdID = "", "", ""
}

func (s *status) fail(msg string, err error) error {
	s.err = msg
	return err
}

func (s *status) invalid(msg string) error {
	s.err = msg
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}

func (s *status) succeed(notice, id string) {
	s.notice, s.createdID = notice, id
	if id != "" {
		s.notice += " (ID: " + id + ")"
	}
}
