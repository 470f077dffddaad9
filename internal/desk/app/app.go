// Package app is the terminal front end for the registry. Each subcommand
// drives one of the desk views and renders its state as text.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
	"github.com/aussiebroadwan/healthdesk/pkg/tokenstore"
)

// BuildVersion should be set at build time via ldflags.
var BuildVersion = "v0.1.0"

// ErrUsage is returned for an unknown subcommand or bad arguments. Usage
// has already been printed.
var ErrUsage = errors.New("usage")

// App holds what every subcommand needs.
type App struct {
	cfg    Config
	logger *slog.Logger

	tokens *tokenstore.Store
	api    *healthsdk.Session
	rdb    *redis.Client

	in  *bufio.Scanner
	out io.Writer
	now func() time.Time
	loc *time.Location
}

// New wires the token store for cfg.TokenBackend and a registry client.
func New(cfg Config, in io.Reader, out io.Writer) (*App, error) {
	logger := slogx.New(slogx.Config{
		Service: "healthdesk-desk",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  os.Stderr,
	})

	var (
		durable tokenstore.Backend
		rdb     *redis.Client
	)
	switch cfg.TokenBackend {
	case BackendFile:
		durable = tokenstore.NewFileBackend(cfg.TokenFile)
	case BackendRedis:
		rdb = tokenstore.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		durable = tokenstore.NewRedisBackend(rdb, cfg.RedisKey, cfg.RedisTTL)
	default:
		return nil, fmt.Errorf("unknown token backend %q (want %s or %s)", cfg.TokenBackend, BackendFile, BackendRedis)
	}

	tokens := tokenstore.New(durable, tokenstore.NewMemoryBackend())
	a := newApp(cfg, tokens, healthsdk.NewSession(cfg.APIURL, tokens), in, out)
	a.logger = logger
	a.rdb = rdb

	logger.Debug("desk configured", "api_url", cfg.APIURL, "token_backend", cfg.TokenBackend)
	return a, nil
}

func newApp(cfg Config, tokens *tokenstore.Store, api *healthsdk.Session, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: slog.Default(),
		tokens: tokens,
		api:    api,
		in:     bufio.NewScanner(in),
		out:    &syncWriter{w: out},
		now:    time.Now,
		loc:    time.Local,
	}
}

// Run executes one subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	ctx = slogx.WithContext(ctx, a.logger)

	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	return a.dispatch(ctx, args[0], args[1:], false)
}

// Close releases the redis connection, if any.
func (a *App) Close() error {
	if a.rdb != nil {
		return a.rdb.Close()
	}
	return nil
}

// syncWriter serialises writes from the shell loop and debounce timers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// ask prints a prompt and reads one line. current, when non-empty, is shown
// and returned for a blank answer.
func (a *App) ask(label, current string) (string, error) {
	if current != "" {
		a.printf("%s [%s]: ", label, current)
	} else {
		a.printf("%s: ", label)
	}

	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}

	line := a.in.Text()
	if line == "" {
		return current, nil
	}
	return line, nil
}

// askEdit is ask for an existing value, where "-" clears it.
func (a *App) askEdit(label, current string) (string, error) {
	v, err := a.ask(label, current)
	if err != nil {
		return "", err
	}
	if v == "-" {
		return "", nil
	}
	return v, nil
}
