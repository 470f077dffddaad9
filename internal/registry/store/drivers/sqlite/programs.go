package sqlite

import (
	"context"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite/gen"
)

type programsRepo struct {
	q *gen.Queries
}

func (r *programsRepo) CreateProgram(ctx context.Context, p domain.Program) error {
	return mapConstraint(r.q.CreateProgram(ctx, gen.CreateProgramParams{
		ID:          p.ID,
		Name:        p.Name,
		Description: mapStringNull(p.Description),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}))
}

func (r *programsRepo) GetProgramByID(ctx context.Context, id string) (domain.Program, error) {
	row, err := r.q.GetProgramByID(ctx, id)
	if err != nil {
		return domain.Program{}, mapNotFound(err)
	}
	return mapProgram(row), nil
}

func (r *programsRepo) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.q.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	return mapPrograms(rows), nil
}

func (r *programsRepo) UpdateProgram(ctx context.Context, p domain.Program) error {
	return mapRowsAffected(r.q.UpdateProgram(ctx, gen.UpdateProgramParams{
		Name:        p.Name,
		Description: mapStringNull(p.Description),
		UpdatedAt:   p.UpdatedAt,
		ID:          p.ID,
	}))
}
