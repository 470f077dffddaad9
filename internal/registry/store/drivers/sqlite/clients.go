package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite/gen"
)

type clientsRepo struct {
	q *gen.Queries
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	return mapConstraint(r.q.CreateClient(ctx, gen.CreateClientParams{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            mapStringNull(c.Phone),
		DateOfBirth:      mapStringNull(c.DateOfBirth),
		Address:          mapStringNull(c.Address),
		Gender:           mapStringNull(c.Gender),
		EmergencyContact: mapStringNull(c.EmergencyContact),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}))
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row, err := r.q.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row), nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	return mapClients(rows), nil
}

func (r *clientsRepo) SearchClients(ctx context.Context, term string) ([]domain.Client, error) {
	rows, err := r.q.SearchClients(ctx, likePattern(term))
	if err != nil {
		return nil, err
	}
	return mapClients(rows), nil
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	n, err := r.q.UpdateClient(ctx, gen.UpdateClientParams{
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            mapStringNull(c.Phone),
		DateOfBirth:      mapStringNull(c.DateOfBirth),
		Address:          mapStringNull(c.Address),
		Gender:           mapStringNull(c.Gender),
		EmergencyContact: mapStringNull(c.EmergencyContact),
		UpdatedAt:        c.UpdatedAt,
		ID:               c.ID,
	})
	return mapRowsAffected(n, mapConstraint(err))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring LIKE, escaping the wildcards so
// "50%" matches literally. Case folding is left to SQL: lower() is applied
// to both the pattern and the columns so they fold identically.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
