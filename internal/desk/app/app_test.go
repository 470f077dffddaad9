package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/tokenstore"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// fakeRegistry serves just enough of the API for the commands under test.
func fakeRegistry(t *testing.T) *httptest.Server {
	t.Helper()

	clients := []healthsdk.Client{
		{ID: "c1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", DateOfBirth: "1990-01-01", Gender: "Female",
			Programs: []healthsdk.Program{{ID: "p1", Name: "HIV"}}},
		{ID: "c2", FirstName: "Bob", LastName: "Jones", Email: "bob@example.com", Gender: "Male"},
	}
	programs := []healthsdk.Program{{ID: "p1", Name: "HIV"}, {ID: "p2", Name: "TB"}}

	write := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer tok"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req healthsdk.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "doctor" || req.Password != "password" {
			write(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		write(w, http.StatusOK, healthsdk.LoginResponse{AccessToken: "tok"})
	})
	mux.HandleFunc("GET /api/clients", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			write(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		write(w, http.StatusOK, clients)
	})
	mux.HandleFunc("GET /api/clients/search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		var out []healthsdk.Client
		for _, c := range clients {
			if strings.Contains(strings.ToLower(c.FullName()+" "+c.Email), q) {
				out = append(out, c)
			}
		}
		write(w, http.StatusOK, out)
	})
	mux.HandleFunc("GET /api/programs", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, programs)
	})
	mux.HandleFunc("POST /api/clients/{id}/programs", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusCreated, healthsdk.MessageResponse{Message: "Client enrolled in program"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testApp(t *testing.T, srv *httptest.Server, in io.Reader) (*App, *lockedBuffer, *tokenstore.MemoryBackend) {
	t.Helper()

	durable := tokenstore.NewMemoryBackend()
	tokens := tokenstore.New(durable, nil)
	out := &lockedBuffer{}

	cfg := Config{APIURL: srv.URL + "/api", SearchDebounce: 10 * time.Millisecond}
	a := newApp(cfg, tokens, healthsdk.NewSession(cfg.APIURL, tokens), in, out)
	a.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	a.loc = time.UTC
	return a, out, durable
}

func loggedIn(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.tokens.SetToken(context.Background(), "tok", false))
}

func TestRunUnknownCommand(t *testing.T) {
	a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))

	require.ErrorIs(t, a.Run(context.Background(), []string{"nope"}), ErrUsage)
	require.Contains(t, out.String(), "usage: desk")

	require.ErrorIs(t, a.Run(context.Background(), nil), ErrUsage)
}

func TestLogin(t *testing.T) {
	t.Run("remember stores the durable token", func(t *testing.T) {
		a, out, durable := testApp(t, fakeRegistry(t), strings.NewReader("doctor\npassword\n"))

		require.NoError(t, a.Run(context.Background(), []string{"login", "-remember"}))
		require.Contains(t, out.String(), "remembered")

		tok, err := durable.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, "tok", tok)
	})

	t.Run("session only", func(t *testing.T) {
		a, _, durable := testApp(t, fakeRegistry(t), strings.NewReader("doctor\npassword\n"))

		require.NoError(t, a.Run(context.Background(), []string{"login"}))
		_, err := durable.Load(context.Background())
		require.ErrorIs(t, err, tokenstore.ErrNoToken)
		require.True(t, a.tokens.HasToken(context.Background()))
	})

	t.Run("bad credentials", func(t *testing.T) {
		a, _, _ := testApp(t, fakeRegistry(t), strings.NewReader("doctor\nwrong\n"))

		err := a.Run(context.Background(), []string{"login"})
		require.EqualError(t, err, "Invalid credentials")
		require.False(t, a.tokens.HasToken(context.Background()))
	})

	t.Run("input ends early", func(t *testing.T) {
		a, _, _ := testApp(t, fakeRegistry(t), strings.NewReader("doctor\n"))
		require.ErrorIs(t, a.Run(context.Background(), []string{"login"}), io.ErrUnexpectedEOF)
	})
}

func TestLogout(t *testing.T) {
	a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
	loggedIn(t, a)

	require.NoError(t, a.Run(context.Background(), []string{"logout"}))
	require.False(t, a.tokens.HasToken(context.Background()))
	require.Contains(t, out.String(), "Logged out.")
}

func TestClients(t *testing.T) {
	t.Run("requires login", func(t *testing.T) {
		a, _, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
		require.EqualError(t, a.Run(context.Background(), []string{"clients"}), "Please log in to search clients.")
	})

	t.Run("lists everyone", func(t *testing.T) {
		a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
		loggedIn(t, a)

		require.NoError(t, a.Run(context.Background(), []string{"clients"}))
		require.Contains(t, out.String(), "Alice Smith")
		require.Contains(t, out.String(), "Bob Jones")
	})

	t.Run("searches", func(t *testing.T) {
		a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
		loggedIn(t, a)

		require.NoError(t, a.Run(context.Background(), []string{"clients", "-q", "bob"}))
		require.Contains(t, out.String(), "Bob Jones")
		require.NotContains(t, out.String(), "Alice")
	})

	t.Run("no matches", func(t *testing.T) {
		a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
		loggedIn(t, a)

		require.NoError(t, a.Run(context.Background(), []string{"clients", "-q", "zed"}))
		require.Contains(t, out.String(), "No clients found.")
	})
}

func TestPrograms(t *testing.T) {
	a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
	loggedIn(t, a)

	require.NoError(t, a.Run(context.Background(), []string{"programs"}))

	lines := strings.Split(out.String(), "\n")
	require.Regexp(t, `^p1\s+HIV\s+1\s+-$`, lines[1])
	require.Regexp(t, `^p2\s+TB\s+0\s+-$`, lines[2])
}

func TestEnroll(t *testing.T) {
	t.Run("by number from the prompt", func(t *testing.T) {
		a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader("2\n"))
		loggedIn(t, a)

		require.NoError(t, a.Run(context.Background(), []string{"enroll", "c2"}))
		require.Contains(t, out.String(), "1)")
		require.Contains(t, out.String(), "Client enrolled successfully!")
	})

	t.Run("bad choice", func(t *testing.T) {
		a, _, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
		loggedIn(t, a)

		require.EqualError(t, a.Run(context.Background(), []string{"enroll", "c2", "9"}), "Please select a program.")
	})

	t.Run("missing client id", func(t *testing.T) {
		a, _, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
		require.ErrorIs(t, a.Run(context.Background(), []string{"enroll"}), ErrUsage)
	})
}

func TestDashboard(t *testing.T) {
	a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader(""))
	loggedIn(t, a)

	require.NoError(t, a.Run(context.Background(), []string{"dashboard"}))

	s := out.String()
	require.Contains(t, s, "Clients: 2    Programs: 2")
	require.Regexp(t, `30-50\s+#+ 1`, s)
	require.Regexp(t, `0-10\s+#+ 1`, s)
	require.Regexp(t, `Female\s+#+ 1`, s)
	require.Regexp(t, `TB\s+ 0`, s)
	require.NotContains(t, s, "No data yet")
}

func TestShell(t *testing.T) {
	t.Run("runs commands until quit", func(t *testing.T) {
		a, out, _ := testApp(t, fakeRegistry(t), strings.NewReader("help\nnope\nprograms\nshell\nquit\nprograms\n"))
		loggedIn(t, a)

		require.NoError(t, a.Run(context.Background(), []string{"shell"}))

		s := out.String()
		require.Contains(t, s, "unknown command \"nope\"")
		require.Contains(t, s, "error: already in a shell")
		require.Equal(t, 1, strings.Count(s, "ENROLLED"))
	})

	t.Run("debounced search prints results", func(t *testing.T) {
		pr, pw := io.Pipe()
		a, out, _ := testApp(t, fakeRegistry(t), pr)
		loggedIn(t, a)

		done := make(chan error, 1)
		go func() { done <- a.Run(context.Background(), []string{"shell"}) }()

		_, err := io.WriteString(pw, "? ali\n")
		require.NoError(t, err)
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), "1 match(es) for \"ali\"")
		}, 2*time.Second, 10*time.Millisecond)
		require.Contains(t, out.String(), "Alice Smith")

		_, err = io.WriteString(pw, "quit\n")
		require.NoError(t, err)
		require.NoError(t, <-done)
		_ = pw.Close()
	})
}

func TestRenderBars(t *testing.T) {
	var buf bytes.Buffer
	renderBars(&buf, nil)
	require.Equal(t, "  (none)\n", buf.String())
}
