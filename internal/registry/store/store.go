package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// one sub-repository per table so a Tx can hand out the same repos bound to
// the transaction.
type Store interface {
	Users() Users
	Clients() Clients
	Programs() Programs
	Enrollments() Enrollments

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByUsername is used at login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a staff user. ErrAlreadyExists on a taken username.
	CreateUser(ctx context.Context, u domain.User) error

	// IsEmpty reports whether no staff users exist yet.
	IsEmpty(ctx context.Context) (bool, error)
}

type Clients interface {
	// CreateClient inserts c. ErrAlreadyExists when the email is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns every client in creation order.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// SearchClients matches term case-insensitively as a substring of first
	// name, last name or email. An empty term matches everyone.
	SearchClients(ctx context.Context, term string) ([]domain.Client, error)

	// UpdateClient overwrites every mutable column of c.ID and bumps
	// updated_at. ErrNotFound when the row is gone, ErrAlreadyExists when the
	// new email belongs to someone else.
	UpdateClient(ctx context.Context, c domain.Client) error
}

type Programs interface {
	CreateProgram(ctx context.Context, p domain.Program) error

	GetProgramByID(ctx context.Context, id string) (domain.Program, error)

	// ListPrograms returns every program in creation order.
	ListPrograms(ctx context.Context) ([]domain.Program, error)

	// UpdateProgram sets name and description. ErrNotFound when the row is gone.
	UpdateProgram(ctx context.Context, p domain.Program) error
}

type Enrollments interface {
	// CreateEnrollment links a client and program. ErrAlreadyExists when the
	// pair is already linked.
	CreateEnrollment(ctx context.Context, e domain.Enrollment) error

	// DeleteEnrollment unlinks the pair. ErrNotFound when it was not linked.
	DeleteEnrollment(ctx context.Context, clientID, programID string) error

	// ListProgramsForClient returns the client's programs ordered by name.
	ListProgramsForClient(ctx context.Context, clientID string) ([]domain.Program, error)

	// ListEnrolledPrograms returns every enrollment joined with its program,
	// ordered by client then program name.
	ListEnrolledPrograms(ctx context.Context) ([]domain.EnrolledProgram, error)
}
