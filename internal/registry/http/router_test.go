package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	registryhttp "github.com/aussiebroadwan/healthdesk/internal/registry/http"
	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthdesk/pkg/cryptox"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
	"github.com/aussiebroadwan/healthdesk/pkg/tokenstore"
)

const (
	staffUser = "doctor"
	staffPass = "correct horse"
	issuer    = "healthdesk-test"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cryptox.SetPepperPath(t.TempDir() + "/pepper")

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, _, err := jwtx.LoadOrGenerateKey("")
	require.NoError(t, err)
	keys, err := jwtx.NewKeyManager(signer, issuer)
	require.NoError(t, err)

	auth := &service.AuthService{Store: st, Signer: keys.Signer, Issuer: issuer, TokenTTL: jwtx.DefaultAccessTokenTTL}
	_, err = auth.SeedStaff(context.Background(), staffUser, staffPass)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := registryhttp.NewRouter(keys.KeySet, keys.Verifier, "test", st, logger, []string{"http://localhost:3000"})
	router.AuthService = auth
	router.ClientService = &service.ClientService{Store: st}
	router.ProgramService = &service.ProgramService{Store: st}
	router.EnrollmentService = &service.EnrollmentService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) (*healthsdk.Session, *tokenstore.Store) {
	t.Helper()
	tokens := tokenstore.New(tokenstore.NewMemoryBackend(), tokenstore.NewMemoryBackend())
	return healthsdk.NewSession(srv.URL+"/api", tokens), tokens
}

func login(t *testing.T, srv *httptest.Server) *healthsdk.Session {
	t.Helper()
	client, tokens := newClient(t, srv)
	resp, err := client.Login(t.Context(), healthsdk.LoginRequest{Username: staffUser, Password: staffPass})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NoError(t, tokens.SetToken(t.Context(), resp.AccessToken, false))
	return client
}

func raw(t *testing.T, method, url, token, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestLogin(t *testing.T) {
	srv := newServer(t)

	t.Run("wrong password", func(t *testing.T) {
		code, body := raw(t, http.MethodPost, srv.URL+"/api/login", "", `{"username":"doctor","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, code)
		require.Equal(t, "Invalid credentials", body["message"])
	})

	t.Run("unknown user", func(t *testing.T) {
		code, body := raw(t, http.MethodPost, srv.URL+"/api/login", "", `{"username":"nurse","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, code)
		require.Equal(t, "Invalid credentials", body["message"])
	})

	t.Run("malformed body", func(t *testing.T) {
		code, _ := raw(t, http.MethodPost, srv.URL+"/api/login", "", `{"username":`)
		require.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("success", func(t *testing.T) {
		code, body := raw(t, http.MethodPost, srv.URL+"/api/login", "", `{"username":"doctor","password":"correct horse"}`)
		require.Equal(t, http.StatusOK, code)
		require.NotEmpty(t, body["access_token"])
	})
}

func TestRoutesRequireToken(t *testing.T) {
	srv := newServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/clients"},
		{http.MethodGet, "/api/clients/search?q=a"},
		{http.MethodPost, "/api/clients"},
		{http.MethodGet, "/api/programs"},
		{http.MethodPost, "/api/programs"},
	} {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			code, _ := raw(t, route.method, srv.URL+route.path, "", `{}`)
			require.Equal(t, http.StatusUnauthorized, code)

			code, _ = raw(t, route.method, srv.URL+route.path, "not-a-jwt", `{}`)
			require.Equal(t, http.StatusUnauthorized, code)
		})
	}
}

func TestClientsFlow(t *testing.T) {
	srv := newServer(t)
	client := login(t, srv)
	ctx := t.Context()

	alice, err := client.CreateClient(ctx, healthsdk.CreateClientRequest{
		FirstName: "Alice", LastName: "Smith", Email: "alice@example.com",
		DateOfBirth: "1990-04-01", Gender: healthsdk.GenderFemale,
	})
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)
	require.NotNil(t, alice.Programs)
	require.Empty(t, alice.Programs)
	require.False(t, alice.CreatedAt.IsZero())

	_, err = client.CreateClient(ctx, healthsdk.CreateClientRequest{FirstName: "Bob", LastName: "Jones", Email: "bob@example.com"})
	require.NoError(t, err)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := client.CreateClient(ctx, healthsdk.CreateClientRequest{FirstName: "A", LastName: "B", Email: "ALICE@example.com"})
		require.ErrorIs(t, err, healthsdk.ErrConflict)
	})

	t.Run("server side validation", func(t *testing.T) {
		_, err := client.CreateClient(ctx, healthsdk.CreateClientRequest{FirstName: "A", LastName: "B", Email: "nope"})
		require.ErrorIs(t, err, healthsdk.ErrValidation)

		var sdkErr *healthsdk.Error
		require.ErrorAs(t, err, &sdkErr)
		require.Equal(t, "Email must be a valid address.", sdkErr.Message)
	})

	t.Run("empty search equals list", func(t *testing.T) {
		all, err := client.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)

		searched, err := client.SearchClients(ctx, "")
		require.NoError(t, err)
		require.Equal(t, all, searched)
	})

	t.Run("search matches case-insensitively", func(t *testing.T) {
		found, err := client.SearchClients(ctx, "SMI")
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Equal(t, alice.ID, found[0].ID)

		none, err := client.SearchClients(ctx, "zed")
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("partial update", func(t *testing.T) {
		phone := "0400 000 000"
		got, err := client.UpdateClient(ctx, alice.ID, healthsdk.UpdateClientRequest{Phone: &phone})
		require.NoError(t, err)
		require.Equal(t, phone, got.Phone)
		require.Equal(t, "Alice", got.FirstName)
		require.Equal(t, "1990-04-01", got.DateOfBirth)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := client.GetClient(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
		require.ErrorIs(t, err, healthsdk.ErrNotFound)

		_, err = client.GetClient(ctx, "not-an-id")
		require.ErrorIs(t, err, healthsdk.ErrNotFound)
	})
}

func TestProgramsAndEnrollments(t *testing.T) {
	srv := newServer(t)
	client := login(t, srv)
	ctx := t.Context()

	alice, err := client.CreateClient(ctx, healthsdk.CreateClientRequest{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"})
	require.NoError(t, err)

	tb, err := client.CreateProgram(ctx, healthsdk.ProgramRequest{Name: "TB", Description: "Tuberculosis"})
	require.NoError(t, err)
	require.Equal(t, "TB", tb.Name)

	t.Run("update program", func(t *testing.T) {
		got, err := client.UpdateProgram(ctx, tb.ID, healthsdk.ProgramRequest{Name: "TB Care", Description: "Treatment"})
		require.NoError(t, err)
		require.Equal(t, "TB Care", got.Name)

		list, err := client.ListPrograms(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "TB Care", list[0].Name)
	})

	t.Run("empty program name", func(t *testing.T) {
		code, body := raw(t, http.MethodPost, srv.URL+"/api/programs", tokenOf(t, srv), `{"name":"  "}`)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "Program name is required.", body["message"])
	})

	t.Run("enroll", func(t *testing.T) {
		msg, err := client.CreateEnrollment(ctx, alice.ID, tb.ID)
		require.NoError(t, err)
		require.Equal(t, "Client enrolled in program", msg.Message)

		_, err = client.CreateEnrollment(ctx, alice.ID, tb.ID)
		require.ErrorIs(t, err, healthsdk.ErrConflict)

		got, err := client.GetClient(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, got.Programs, 1)
		require.Equal(t, tb.ID, got.Programs[0].ID)
	})

	t.Run("enroll unknown program", func(t *testing.T) {
		_, err := client.CreateEnrollment(ctx, alice.ID, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
		require.ErrorIs(t, err, healthsdk.ErrNotFound)
	})

	t.Run("unenroll", func(t *testing.T) {
		require.NoError(t, client.DeleteEnrollment(ctx, alice.ID, tb.ID))

		err := client.DeleteEnrollment(ctx, alice.ID, tb.ID)
		require.ErrorIs(t, err, healthsdk.ErrNotFound)
	})
}

func tokenOf(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	code, body := raw(t, http.MethodPost, srv.URL+"/api/login", "", `{"username":"doctor","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, code)
	return body["access_token"].(string)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)
	sdk := healthsdk.NewSDKClient(srv.URL + "/api")

	live, err := sdk.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := sdk.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}

func TestCORSPreflight(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodOptions, srv.URL+"/api/clients", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
