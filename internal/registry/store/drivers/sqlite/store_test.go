package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthdesk/pkg/idx"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newClient(first, last, email string) domain.Client {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Client{
		ID:        idx.NewAt(now).String(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newProgram(name string) domain.Program {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Program{ID: idx.NewAt(now).String(), Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestClients(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	alice := newClient("Alice", "Smith", "alice@example.com")
	alice.Phone = "0400 000 000"
	alice.DateOfBirth = "1990-05-01"
	require.NoError(t, st.Clients().CreateClient(ctx, alice))

	bob := newClient("Bob", "Jones", "bob@example.com")
	require.NoError(t, st.Clients().CreateClient(ctx, bob))

	t.Run("get round trips optional columns", func(t *testing.T) {
		got, err := st.Clients().GetClientByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "0400 000 000", got.Phone)
		require.Equal(t, "1990-05-01", got.DateOfBirth)
		require.Empty(t, got.Address)
		require.True(t, alice.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := st.Clients().GetClientByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("email is unique regardless of case", func(t *testing.T) {
		err := st.Clients().CreateClient(ctx, newClient("A", "B", "ALICE@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("list is in creation order", func(t *testing.T) {
		all, err := st.Clients().ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, alice.ID, all[0].ID)
		require.Equal(t, bob.ID, all[1].ID)
	})

	t.Run("search", func(t *testing.T) {
		for term, want := range map[string]int{
			"":        2,
			"ALI":     1,
			"jones":   1,
			"example": 2,
			"%":       0,
			"_":       0,
			"zed":     0,
		} {
			got, err := st.Clients().SearchClients(ctx, term)
			require.NoError(t, err)
			require.Len(t, got, want, "term %q", term)
		}
	})

	t.Run("update", func(t *testing.T) {
		c := alice
		c.Phone = ""
		c.Gender = domain.GenderFemale
		c.UpdatedAt = c.UpdatedAt.Add(time.Minute)
		require.NoError(t, st.Clients().UpdateClient(ctx, c))

		got, err := st.Clients().GetClientByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, got.Phone)
		require.Equal(t, domain.GenderFemale, got.Gender)

		c.Email = bob.Email
		require.ErrorIs(t, st.Clients().UpdateClient(ctx, c), store.ErrAlreadyExists)

		c = newClient("X", "Y", "x@example.com")
		require.ErrorIs(t, st.Clients().UpdateClient(ctx, c), store.ErrNotFound)
	})
}

func TestSearchClientsNonASCII(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	emile := newClient("Émile", "Zola", "emile@example.org")
	require.NoError(t, st.Clients().CreateClient(ctx, emile))
	require.NoError(t, st.Clients().CreateClient(ctx, newClient("Zoë", "Nguyễn", "zoe@example.org")))

	for term, want := range map[string]int{
		"Émile":  1,
		"ÉMILE":  1,
		"mile":   1,
		"zola":   1,
		"ZOLA":   1,
		"Zoë":    1,
		"Nguyễn": 1,
		"ễn":     1,
		"zo":     2,
	} {
		got, err := st.Clients().SearchClients(ctx, term)
		require.NoError(t, err)
		require.Len(t, got, want, "term %q", term)
	}

	got, err := st.Clients().SearchClients(ctx, "Émile")
	require.NoError(t, err)
	require.Equal(t, emile.ID, got[0].ID)
}

func TestEnrollments(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	c := newClient("Alice", "Smith", "alice@example.com")
	require.NoError(t, st.Clients().CreateClient(ctx, c))

	tb := newProgram("TB")
	hiv := newProgram("HIV")
	require.NoError(t, st.Programs().CreateProgram(ctx, tb))
	require.NoError(t, st.Programs().CreateProgram(ctx, hiv))

	for _, p := range []domain.Program{tb, hiv} {
		require.NoError(t, st.Enrollments().CreateEnrollment(ctx, domain.Enrollment{ClientID: c.ID, ProgramID: p.ID, CreatedAt: time.Now()}))
	}

	err := st.Enrollments().CreateEnrollment(ctx, domain.Enrollment{ClientID: c.ID, ProgramID: tb.ID, CreatedAt: time.Now()})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	progs, err := st.Enrollments().ListProgramsForClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, progs, 2)
	require.Equal(t, "HIV", progs[0].Name)
	require.Equal(t, "TB", progs[1].Name)

	all, err := st.Enrollments().ListEnrolledPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, c.ID, all[0].ClientID)

	require.NoError(t, st.Enrollments().DeleteEnrollment(ctx, c.ID, tb.ID))
	require.ErrorIs(t, st.Enrollments().DeleteEnrollment(ctx, c.ID, tb.ID), store.ErrNotFound)
}

func TestPrograms(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	p := newProgram("TB")
	require.NoError(t, st.Programs().CreateProgram(ctx, p))

	p.Name = "Tuberculosis"
	p.Description = "Treatment and follow-up"
	require.NoError(t, st.Programs().UpdateProgram(ctx, p))

	got, err := st.Programs().GetProgramByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Tuberculosis", got.Name)
	require.Equal(t, "Treatment and follow-up", got.Description)

	require.ErrorIs(t, st.Programs().UpdateProgram(ctx, newProgram("ghost")), store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Programs().CreateProgram(ctx, newProgram("TB")))
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := st.Programs().ListPrograms(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	empty, err := st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	now := time.Now().UTC()
	u := domain.User{ID: idx.New().String(), Username: "doctor", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Users().CreateUser(ctx, u))
	require.ErrorIs(t, st.Users().CreateUser(ctx, u), store.ErrAlreadyExists)

	got, err := st.Users().GetUserByUsername(ctx, "doctor")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = st.Users().GetUserByUsername(ctx, "nurse")
	require.ErrorIs(t, err, store.ErrNotFound)
}
