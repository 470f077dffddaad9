package forms

import (
	"context"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/healthdesk/internal/desk/entity"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

const (
	msgEnrollLogIn    = "Please log in to enroll a client."
	msgEnrollFailed   = "Failed to enroll client."
	msgEnrolled       = "Client enrolled successfully!"
	msgProgramsFailed = "Failed to fetch programs."
	msgSelectProgram  = "Please select a program."
)

// EnrollAPI is what the enroll form calls.
type EnrollAPI interface {
	TokenChecker
	ListPrograms(ctx context.Context) ([]healthsdk.Program, error)
	CreateEnrollment(ctx context.Context, clientID, programID string) (*healthsdk.MessageResponse, error)
}

// EnrollClient is the enroll-in-program form. The program list is loaded
// first so the user picks from what exists.
type EnrollClient struct {
	status
	api      EnrollAPI
	programs []healthsdk.Program
	Draft    entity.EnrollmentDraft
}

func NewEnrollClient(api EnrollAPI, clientID string) *EnrollClient {
	return &EnrollClient{api: api, Draft: entity.EnrollmentDraft{ClientID: clientID}}
}

func (f *EnrollClient) CanSubmit(ctx context.Context) bool {
	return f.api.HasToken(ctx)
}

// LoadPrograms fetches the choices.
func (f *EnrollClient) LoadPrograms(ctx context.Context) error {
	f.reset()

	if !f.CanSubmit(ctx) {
		return f.fail(msgEnrollLogIn, ErrNotLoggedIn)
	}

	programs, err := f.api.ListPrograms(ctx)
	if err != nil {
		return f.fail(healthsdk.Message(err, msgProgramsFailed), err)
	}
	f.programs = programs
	return nil
}

// Programs returns the loaded choices in list order.
func (f *EnrollClient) Programs() []healthsdk.Program {
	return f.programs
}

// Choose selects a program by 1-based list position or by id.
func (f *EnrollClient) Choose(sel string) error {
	sel = strings.TrimSpace(sel)

	if n, err := strconv.Atoi(sel); err == nil && n >= 1 && n <= len(f.programs) {
		f.Draft.ProgramID = f.programs[n-1].ID
		return nil
	}
	for _, p := range f.programs {
		if p.ID == sel {
			f.Draft.ProgramID = p.ID
			return nil
		}
	}

	f.Draft.ProgramID = ""
	return f.invalid(msgSelectProgram)
}

// Submit enrolls the chosen pair.
func (f *EnrollClient) Submit(ctx context.Context) error {
	f.reset()

	if !f.CanSubmit(ctx) {
		return f.fail(msgEnrollLogIn, ErrNotLoggedIn)
	}
	if fields := f.Draft.Validate(); fields != nil {
		return f.invalid(fields.Message())
	}

	req := f.Draft.Request()
	if _, err := f.api.CreateEnrollment(ctx, req.ClientID, req.ProgramID); err != nil {
		return f.fail(healthsdk.Message(err, msgEnrollFailed), err)
	}

	f.Draft = entity.EnrollmentDraft{}
	f.succeed(msgEnrolled, "")
	return nil
}
