package domain

import "time"

type Program struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Enrollment links a client to a program.
type Enrollment struct {
	ClientID  string
	ProgramID string
	CreatedAt time.Time
}

// EnrolledProgram is a program as seen from one client's enrollment.
type EnrolledProgram struct {
	ClientID string
	Program  Program
}
