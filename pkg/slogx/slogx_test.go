package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, slogx.ParseLevel(in), "level %q", in)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Same(t, slog.Default(), slogx.FromContext(context.Background()))
}

func TestWithNarrowsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	require.Equal(t, ctx, slogx.With(ctx))

	ctx = slogx.WithUserID(ctx, "01JUSER")
	ctx = slogx.WithClientID(ctx, "01JCLIENT")
	ctx = slogx.With(ctx, "program_id", "01JPROG")
	slogx.FromContext(ctx).Info("client enrolled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "client enrolled", entry["msg"])
	require.Equal(t, "01JUSER", entry[slogx.KeyUserID])
	require.Equal(t, "01JCLIENT", entry[slogx.KeyClientID])
	require.Equal(t, "01JPROG", entry["program_id"])
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var seen *slog.Logger
	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = slogx.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("propagates the caller request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
		req.Header.Set(slogx.RequestIDHeader, "req-123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))
		require.NotNil(t, seen)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "http_request", entry["msg"])
		require.Equal(t, "req-123", entry["req_id"])
		require.Equal(t, "/api/clients", entry["path"])
		require.EqualValues(t, http.StatusTeapot, entry["status"])
	})

	t.Run("mints a request id when absent", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
	})
}
