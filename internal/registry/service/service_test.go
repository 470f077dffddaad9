package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthdesk/pkg/cryptox"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	cryptox.SetPepperPath(t.TempDir() + "/pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func ptr(s string) *string { return &s }

func TestClientService(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &ClientService{Store: st}
	programs := &ProgramService{Store: st}
	enroll := &EnrollmentService{Store: st}

	alice, err := svc.CreateClient(ctx, domain.Client{FirstName: " Alice ", LastName: "Smith", Email: "alice@example.com", Gender: domain.GenderFemale})
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)
	require.Equal(t, "Alice", alice.FirstName)
	require.NotNil(t, alice.Programs)
	require.False(t, alice.CreatedAt.IsZero())

	t.Run("create validates", func(t *testing.T) {
		_, err := svc.CreateClient(ctx, domain.Client{FirstName: "x", Email: "nope", DateOfBirth: "01/02/2000", Gender: "Robot"})
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "last_name")
		require.Contains(t, verr.Fields, "email")
		require.Contains(t, verr.Fields, "date_of_birth")
		require.Contains(t, verr.Fields, "gender")
		require.Equal(t, "Last name is required. Email must be a valid address. Date of birth must be YYYY-MM-DD. Gender must be Male, Female or Other.", err.Error())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateClient(ctx, domain.Client{FirstName: "A", LastName: "B", Email: "Alice@Example.com"})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("get and search include programs", func(t *testing.T) {
		hiv, err := programs.CreateProgram(ctx, "HIV", "")
		require.NoError(t, err)
		require.NoError(t, enroll.Enroll(ctx, alice.ID, hiv.ID))

		got, err := svc.GetClient(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, got.Programs, 1)
		require.Equal(t, "HIV", got.Programs[0].Name)

		found, err := svc.SearchClients(ctx, "  smi ")
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Len(t, found[0].Programs, 1)

		none, err := svc.SearchClients(ctx, "zed")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)
	})

	t.Run("blank search lists everyone", func(t *testing.T) {
		all, err := svc.ListClients(ctx)
		require.NoError(t, err)
		blank, err := svc.SearchClients(ctx, "")
		require.NoError(t, err)
		require.Equal(t, all, blank)
	})

	t.Run("missing client", func(t *testing.T) {
		_, err := svc.GetClient(ctx, "missing")
		require.ErrorIs(t, err, ErrClientNotFound)
		_, err = svc.UpdateClient(ctx, "missing", domain.ClientPatch{Phone: ptr("1")})
		require.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		got, err := svc.UpdateClient(ctx, alice.ID, domain.ClientPatch{Phone: ptr("0400"), DateOfBirth: ptr("1990-02-03")})
		require.NoError(t, err)
		require.Equal(t, "0400", got.Phone)
		require.Equal(t, "1990-02-03", got.DateOfBirth)
		require.Equal(t, "Alice", got.FirstName)
		require.Equal(t, domain.GenderFemale, got.Gender)
		require.Len(t, got.Programs, 1)

		_, err = svc.UpdateClient(ctx, alice.ID, domain.ClientPatch{FirstName: ptr("  ")})
		require.ErrorIs(t, err, ErrValidation)

		reread, err := svc.GetClient(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "Alice", reread.FirstName)
	})

	t.Run("update to a taken email", func(t *testing.T) {
		bob, err := svc.CreateClient(ctx, domain.Client{FirstName: "Bob", LastName: "Jones", Email: "bob@example.com"})
		require.NoError(t, err)
		_, err = svc.UpdateClient(ctx, bob.ID, domain.ClientPatch{Email: ptr("alice@example.com")})
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestEnrollmentService(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	clients := &ClientService{Store: st}
	programs := &ProgramService{Store: st}
	svc := &EnrollmentService{Store: st}

	c, err := clients.CreateClient(ctx, domain.Client{FirstName: "A", LastName: "B", Email: "a@b.c"})
	require.NoError(t, err)
	p, err := programs.CreateProgram(ctx, "TB", "")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Enroll(ctx, "missing", p.ID), ErrClientNotFound)
	require.ErrorIs(t, svc.Enroll(ctx, c.ID, "missing"), ErrProgramNotFound)

	require.NoError(t, svc.Enroll(ctx, c.ID, p.ID))
	require.ErrorIs(t, svc.Enroll(ctx, c.ID, p.ID), ErrAlreadyEnrolled)

	require.NoError(t, svc.Unenroll(ctx, c.ID, p.ID))
	require.ErrorIs(t, svc.Unenroll(ctx, c.ID, p.ID), ErrNotEnrolled)
}

func TestServiceLogsCarryClientID(t *testing.T) {
	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	st := newStore(t)
	clients := &ClientService{Store: st}
	programs := &ProgramService{Store: st}
	svc := &EnrollmentService{Store: st}

	c, err := clients.CreateClient(ctx, domain.Client{FirstName: "A", LastName: "B", Email: "a@b.c"})
	require.NoError(t, err)
	p, err := programs.CreateProgram(ctx, "TB", "")
	require.NoError(t, err)
	_, err = clients.UpdateClient(ctx, c.ID, domain.ClientPatch{Phone: ptr("0400")})
	require.NoError(t, err)
	require.NoError(t, svc.Enroll(ctx, c.ID, p.ID))

	tagged := map[string]bool{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry[slogx.KeyClientID] == c.ID {
			tagged[entry["msg"].(string)] = true
		}
	}
	require.True(t, tagged["client registered"])
	require.True(t, tagged["client updated"])
	require.True(t, tagged["client enrolled"])
}

func TestProgramService(t *testing.T) {
	ctx := context.Background()
	svc := &ProgramService{Store: newStore(t)}

	empty, err := svc.ListPrograms(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	_, err = svc.CreateProgram(ctx, " ", "x")
	require.ErrorIs(t, err, ErrValidation)

	p, err := svc.CreateProgram(ctx, "TB", "")
	require.NoError(t, err)

	got, err := svc.UpdateProgram(ctx, p.ID, "Tuberculosis", " Screening ")
	require.NoError(t, err)
	require.Equal(t, "Tuberculosis", got.Name)
	require.Equal(t, "Screening", got.Description)

	_, err = svc.UpdateProgram(ctx, "missing", "X", "")
	require.ErrorIs(t, err, ErrProgramNotFound)

	_, err = svc.UpdateProgram(ctx, p.ID, "", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	signer, _, err := jwtx.LoadOrGenerateKey("")
	require.NoError(t, err)
	km, err := jwtx.NewKeyManager(signer, "test-issuer")
	require.NoError(t, err)

	now := time.Now().UTC()
	svc := &AuthService{Store: st, Signer: km.Signer, Issuer: "test-issuer", TokenTTL: time.Hour, Now: func() time.Time { return now }}

	created, err := svc.SeedStaff(ctx, "doctor", "password")
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.SeedStaff(ctx, "doctor", "other")
	require.NoError(t, err)
	require.False(t, created)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, " doctor ", "password")
		require.NoError(t, err)

		claims, err := km.Verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "doctor", claims.Username)
		require.ElementsMatch(t, jwtx.StaffScopes, claims.Scopes)
		require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "doctor", "other")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nurse", "password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
