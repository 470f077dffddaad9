package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

type EnrollmentService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *EnrollmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Enroll links the client to the program. A repeat enrollment is
// ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, clientID, programID string) error {
	ctx = slogx.WithClientID(ctx, clientID)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().GetClientByID(ctx, clientID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		if _, err := tx.Programs().GetProgramByID(ctx, programID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProgramNotFound
			}
			return err
		}

		err := tx.Enrollments().CreateEnrollment(ctx, domain.Enrollment{
			ClientID:  clientID,
			ProgramID: programID,
			CreatedAt: s.now(),
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyEnrolled
		}
		return err
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("client enrolled", "program_id", programID)
	return nil
}

// Unenroll removes the link. ErrNotEnrolled when there was none.
func (s *EnrollmentService) Unenroll(ctx context.Context, clientID, programID string) error {
	ctx = slogx.WithClientID(ctx, clientID)

	err := s.Store.Enrollments().DeleteEnrollment(ctx, clientID, programID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotEnrolled
	}
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("client unenrolled", "program_id", programID)
	return nil
}
