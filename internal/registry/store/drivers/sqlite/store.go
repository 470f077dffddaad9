package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store"
	"github.com/aussiebroadwan/healthdesk/internal/registry/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens dsn. The pool is a single connection: SQLite serialises
// writers anyway, and ":memory:" databases are per connection.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
// fn must only use tx: the pool has one connection and tx holds it.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users             { return &usersRepo{q: s.q} }
func (s *Store) Clients() store.Clients         { return &clientsRepo{q: s.q} }
func (s *Store) Programs() store.Programs       { return &programsRepo{q: s.q} }
func (s *Store) Enrollments() store.Enrollments { return &enrollmentsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns SQLite unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// mapRowsAffected reports ErrNotFound for a statement that touched nothing.
func mapRowsAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func mapClient(row gen.Client) domain.Client {
	return domain.Client{
		ID:               row.ID,
		FirstName:        row.FirstName,
		LastName:         row.LastName,
		Email:            row.Email,
		Phone:            mapNullString(row.Phone),
		DateOfBirth:      mapNullString(row.DateOfBirth),
		Address:          mapNullString(row.Address),
		Gender:           mapNullString(row.Gender),
		EmergencyContact: mapNullString(row.EmergencyContact),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func mapClients(rows []gen.Client) []domain.Client {
	out := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapClient(row))
	}
	return out
}

func mapProgram(row gen.Program) domain.Program {
	return domain.Program{
		ID:          row.ID,
		Name:        row.Name,
		Description: mapNullString(row.Description),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapPrograms(rows []gen.Program) []domain.Program {
	out := make([]domain.Program, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapProgram(row))
	}
	return out
}
