package forms

import (
	"context"

	"github.com/aussiebroadwan/healthdesk/internal/desk/entity"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

const (
	msgRegisterLogIn  = "Please log in to register a client."
	msgRegisterFailed = "Failed to register client."
	msgRegistered     = "Client registered successfully!"
)

// RegisterAPI is what the register form calls.
type RegisterAPI interface {
	TokenChecker
	CreateClient(ctx context.Context, req healthsdk.CreateClientRequest) (*healthsdk.Client, error)
}

// RegisterClient is the new-client form.
type RegisterClient struct {
	status
	api   RegisterAPI
	Draft entity.ClientDraft
}

func NewRegisterClient(api RegisterAPI) *RegisterClient {
	return &RegisterClient{api: api}
}

// CanSubmit reports whether the submit action is enabled.
func (f *RegisterClient) CanSubmit(ctx context.Context) bool {
	return f.api.HasToken(ctx)
}

// Submit registers the draft and returns the created client.
func (f *RegisterClient) Submit(ctx context.Context) (*healthsdk.Client, error) {
	f.reset()

	if !f.CanSubmit(ctx) {
		return nil, f.fail(msgRegisterLogIn, ErrNotLoggedIn)
	}
	if fields := f.Draft.ValidateCreate(); fields != nil {
		return nil, f.invalid(fields.Message())
	}

	c, err := f.api.CreateClient(ctx, f.Draft.CreateRequest())
	if err != nil {
		return nil, f.fail(healthsdk.Message(err, msgRegisterFailed), err)
	}

	f.Draft = entity.ClientDraft{}
	f.succeed(msgRegistered, c.ID)
	return c, nil
}
