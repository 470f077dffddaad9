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

type ClientService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ClientService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateClient registers c. ID and timestamps are assigned here; text
// fields are trimmed.
func (s *ClientService) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	c = trimClient(c)
	if err := validateClient(c); err != nil {
		return domain.Client{}, err
	}

	now := s.now()
	c.ID = idx.NewAt(now).String()
	c.CreatedAt, c.UpdatedAt = now, now
	c.Programs = []domain.Program{}

	if err := s.Store.Clients().CreateClient(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Client{}, ErrEmailTaken
		}
		l.Error("failed to create client", "error", err)
		return domain.Client{}, err
	}

	slogx.FromContext(slogx.WithClientID(ctx, c.ID)).Info("client registered")
	return c, nil
}

// GetClient returns one client with their programs.
func (s *ClientService) GetClient(ctx context.Context, id string) (domain.Client, error) {
	c, err := s.Store.Clients().GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}

	c.Programs, err = s.Store.Enrollments().ListProgramsForClient(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

// ListClients returns every client with their programs, oldest first.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.Store.Clients().ListClients(ctx)
	if err != nil {
		return nil, err
	}
	return s.withPrograms(ctx, clients)
}

// SearchClients matches q against first name, last name and email. A blank
// q is the same as ListClients.
func (s *ClientService) SearchClients(ctx context.Context, q string) ([]domain.Client, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.ListClients(ctx)
	}

	clients, err := s.Store.Clients().SearchClients(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.withPrograms(ctx, clients)
}

func (s *ClientService) withPrograms(ctx context.Context, clients []domain.Client) ([]domain.Client, error) {
	if len(clients) == 0 {
		return []domain.Client{}, nil
	}

	enrolled, err := s.Store.Enrollments().ListEnrolledPrograms(ctx)
	if err != nil {
		return nil, err
	}

	byClient := make(map[string][]domain.Program)
	for _, e := range enrolled {
		byClient[e.ClientID] = append(byClient[e.ClientID], e.Program)
	}

	for i := range clients {
		progs := byClient[clients[i].ID]
		if progs == nil {
			progs = []domain.Program{}
		}
		clients[i].Programs = progs
	}
	return clients, nil
}

// UpdateClient applies patch to client id. Only set fields change; the
// result must still be a valid client.
func (s *ClientService) UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) (domain.Client, error) {
	l := slogx.FromContext(slogx.WithClientID(ctx, id))

	var updated domain.Client
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Clients().GetClientByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		patch.Apply(&c)
		c = trimClient(c)
		if err := validateClient(c); err != nil {
			return err
		}

		c.UpdatedAt = s.now()
		if err := tx.Clients().UpdateClient(ctx, c); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return ErrEmailTaken
			case errors.Is(err, store.ErrNotFound):
				return ErrClientNotFound
			}
			return err
		}

		c.Programs, err = tx.Enrollments().ListProgramsForClient(ctx, id)
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrClientNotFound) && !errors.Is(err, ErrEmailTaken) {
			l.Error("failed to update client", "error", err)
		}
		return domain.Client{}, err
	}

	l.Info("client updated")
	return updated, nil
}

func trimClient(c domain.Client) domain.Client {
	for _, f := range []*string{
		&c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.DateOfBirth, &c.Address, &c.Gender, &c.EmergencyContact,
	} {
		*f = strings.TrimSpace(*f)
	}
	return c
}

func validateClient(c domain.Client) error {
	v := &ValidationError{}
	if c.FirstName == "" {
		v.add("first_name", "First name is required.")
	}
	if c.LastName == "" {
		v.add("last_name", "Last name is required.")
	}
	switch {
	case c.Email == "":
		v.add("email", "Email is required.")
	case !strings.Contains(c.Email, "@"):
		v.add("email", "Email must be a valid address.")
	}
	if c.DateOfBirth != "" {
		if _, err := time.Parse(domain.DateLayout, c.DateOfBirth); err != nil {
			v.add("date_of_birth", "Date of birth must be YYYY-MM-DD.")
		}
	}
	switch c.Gender {
	case "", domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		v.add("gender", "Gender must be Male, Female or Other.")
	}
	return v.orNil()
}
