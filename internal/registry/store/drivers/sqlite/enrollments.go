package sqlite

import (
	"context"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite/gen"
)

type enrollmentsRepo struct {
	q *gen.Queries
}

func (r *enrollmentsRepo) CreateEnrollment(ctx context.Context, e domain.Enrollment) error {
	return mapConstraint(r.q.CreateEnrollment(ctx, gen.CreateEnrollmentParams{
		ClientID:  e.ClientID,
		ProgramID: e.ProgramID,
		CreatedAt: e.CreatedAt,
	}))
}

func (r *enrollmentsRepo) DeleteEnrollment(ctx context.Context, clientID, programID string) error {
	return mapRowsAffected(r.q.DeleteEnrollment(ctx, gen.DeleteEnrollmentParams{
		ClientID:  clientID,
		ProgramID: programID,
	}))
}

func (r *enrollmentsRepo) ListProgramsForClient(ctx context.Context, clientID string) ([]domain.Program, error) {
	rows, err := r.q.ListProgramsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return mapPrograms(rows), nil
}

func (r *enrollmentsRepo) ListEnrolledPrograms(ctx context.Context) ([]domain.EnrolledProgram, error) {
	rows, err := r.q.ListEnrolledPrograms(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.EnrolledProgram, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.EnrolledProgram{
			ClientID: row.ClientID,
			Program: domain.Program{
				ID:          row.ID,
				Name:        row.Name,
				Description: mapNullString(row.Description),
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
		})
	}
	return out, nil
}
