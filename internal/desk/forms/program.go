package forms

import (
	"context"

	"github.com/aussiebroadwan/healthdesk/internal/desk/entity"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

const (
	msgProgramLogIn  = "Please log in to create a program."
	msgProgramFailed = "Failed to create program."
	msgProgramMade   = "Program created successfully!"
)

// ProgramAPI is what the create program form calls.
type ProgramAPI interface {
	TokenChecker
	CreateProgram(ctx context.Context, req healthsdk.ProgramRequest) (*healthsdk.Program, error)
}

// CreateProgram is the new-program form.
type CreateProgram struct {
	status
	api   ProgramAPI
	Draft entity.ProgramDraft
}

func NewCreateProgram(api ProgramAPI) *CreateProgram {
	return &CreateProgram{api: api}
}

func (f *CreateProgram) CanSubmit(ctx context.Context) bool {
	return f.api.HasToken(ctx)
}

func (f *CreateProgram) Submit(ctx context.Context) (*healthsdk.Program, error) {
	f.reset()

	if !f.CanSubmit(ctx) {
		return nil, f.fail(msgProgramLogIn, ErrNotLoggedIn)
	}
	if fields := f.Draft.Validate(); fields != nil {
		return nil, f.invalid(fields.Message())
	}

	p, err := f.api.CreateProgram(ctx, f.Draft.Request())
	if err != nil {
		return nil, f.fail(healthsdk.Message(err, msgProgramFailed), err)
	}

	f.Draft = entity.ProgramDraft{}
	f.succeed(msgProgramMade, p.ID)
	return p, nil
}
