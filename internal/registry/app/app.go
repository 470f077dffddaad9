package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpapi "github.com/aussiebroadwan/healthdesk/internal/registry/http"
	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite"
	"github.com/aussiebroadwan/healthdesk/pkg/cryptox"
	"github.com/aussiebroadwan/healthdesk/pkg/jwtx"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the registry service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	authService       *service.AuthService
	clientService     *service.ClientService
	programService    *service.ProgramService
	enrollmentService *service.EnrollmentService

	server *http.Server
	router *httpapi.Router
}

// New opens the database, loads the signing key, seeds the staff account and
// builds the HTTP server. Nothing is listening until Run.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "healthdesk-registry",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing key: %w", err)
	}

	app.initServices()

	if err := app.seedStaff(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed staff account: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to ShutdownGracePeriod and closes the database.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("registry starting", "port", app.cfg.Port, "version", BuildVersion)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		_ = app.db.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)

	case <-ctx.Done():
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
		return app.Shutdown()
	}
}

// Shutdown stops accepting requests, waits for in-flight ones and closes the
// database.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	var errs []error
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		errs = append(errs, err, app.server.Close())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		errs = append(errs, err)
	}

	app.logger.Info("registry stopped")
	return errors.Join(errs...)
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initKeys() error {
	signer, generated, err := jwtx.LoadOrGenerateKey(app.cfg.SigningKeyFile)
	if err != nil {
		return err
	}

	switch {
	case app.cfg.SigningKeyFile == "":
		app.logger.Warn("signing key is in memory only; tokens will not survive a restart", "kid", signer.KID())
	case generated:
		app.logger.Info("generated signing key", "path", app.cfg.SigningKeyFile, "kid", signer.KID())
	default:
		app.logger.Info("loaded signing key", "path", app.cfg.SigningKeyFile, "kid", signer.KID())
	}

	km, err := jwtx.NewKeyManager(signer, app.cfg.Issuer)
	if err != nil {
		return err
	}
	app.keyManager = km
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   app.keyManager.Signer,
		Issuer:   app.cfg.Issuer,
		TokenTTL: app.cfg.TokenTTL,
	}
	app.clientService = &service.ClientService{Store: app.db}
	app.programService = &service.ProgramService{Store: app.db}
	app.enrollmentService = &service.EnrollmentService{Store: app.db}
}

// seedStaff creates the staff account on an empty database. When no password
// is configured one is generated and logged once.
func (app *Application) seedStaff(ctx context.Context) error {
	password := app.cfg.StaffPassword
	generated := false
	if password == "" {
		empty, err := app.db.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}

		password, err = cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		generated = true
	}

	created, err := app.authService.SeedStaff(slogx.WithContext(ctx, app.logger), app.cfg.StaffUsername, password)
	if err != nil {
		return err
	}
	if created && generated {
		app.logger.Warn("seeded staff account with a generated password; set REGISTRY_STAFF_PASSWORD to choose one",
			"username", app.cfg.StaffUsername, "password", password)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSOrigins,
	)

	router.AuthService = app.authService
	router.ClientService = app.clientService
	router.ProgramService = app.programService
	router.EnrollmentService = app.enrollmentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
