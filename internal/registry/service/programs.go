package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/pkg/idx"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

type ProgramService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ProgramService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func validateProgram(name string) error {
	v := &ValidationError{}
	if name == "" {
		v.add("name", "Program name is required.")
	}
	return v.orNil()
}

func (s *ProgramService) CreateProgram(ctx context.Context, name, description string) (domain.Program, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := validateProgram(name); err != nil {
		return domain.Program{}, err
	}

	now := s.now()
	p := domain.Program{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Programs().CreateProgram(ctx, p); err != nil {
		slogx.FromContext(ctx).Error("failed to create program", "error", err)
		return domain.Program{}, err
	}

	slogx.FromContext(ctx).Info("program created", "program_id", p.ID)
	return p, nil
}

func (s *ProgramService) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	programs, err := s.Store.Programs().ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	return programs, nil
}

// UpdateProgram replaces the name and description of program id.
func (s *ProgramService) UpdateProgram(ctx context.Context, id, name, description string) (domain.Program, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := validateProgram(name); err != nil {
		return domain.Program{}, err
	}

	var updated domain.Program
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Programs().GetProgramByID(ctx, id)
		if err != nil {
			return err
		}

		p.Name, p.Description, p.UpdatedAt = name, description, s.now()
		if err := tx.Programs().UpdateProgram(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.Program{}, ErrProgramNotFound
	}
	if err != nil {
		return domain.Program{}, err
	}

	slogx.FromContext(ctx).Info("program updated", "program_id", id)
	return updated, nil
}
