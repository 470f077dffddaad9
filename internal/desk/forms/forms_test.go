package forms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/healthdesk/internal/desk/entity"
	"github.com/aussiebroadwan/healthdesk/internal/desk/forms"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token    bool
	err      error
	programs []healthsdk.Program
	calls    int

	lastClient  healthsdk.CreateClientRequest
	lastProgram healthsdk.ProgramRequest
	lastEnroll  [2]string
}

func (f *fakeAPI) HasToken(context.Context) bool { return f.token }

func (f *fakeAPI) CreateClient(_ context.Context, req healthsdk.CreateClientRequest) (*healthsdk.Client, error) {
	f.calls++
	f.lastClient = req
	if f.err != nil {
		return nil, f.err
	}
	return &healthsdk.Client{ID: "01JNEWCLIENT", FirstName: req.FirstName}, nil
}

func (f *fakeAPI) CreateProgram(_ context.Context, req healthsdk.ProgramRequest) (*healthsdk.Program, error) {
	f.calls++
	f.lastProgram = req
	if f.err != nil {
		return nil, f.err
	}
	return &healthsdk.Program{ID: "01JNEWPROGRAM", Name: req.Name}, nil
}

func (f *fakeAPI) ListPrograms(context.Context) ([]healthsdk.Program, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.programs, nil
}

func (f *fakeAPI) CreateEnrollment(_ context.Context, clientID, programID string) (*healthsdk.MessageResponse, error) {
	f.calls++
	f.lastEnroll = [2]string{clientID, programID}
	if f.err != nil {
		return nil, f.err
	}
	return &healthsdk.MessageResponse{Message: "Client enrolled in program"}, nil
}

func TestRegisterClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("disabled without token", func(t *testing.T) {
		api := &fakeAPI{}
		f := forms.NewRegisterClient(api)
		f.Draft = entity.ClientDraft{FirstName: "Ann", LastName: "Lee", Email: "ann@x.io"}

		require.False(t, f.CanSubmit(ctx))
		_, err := f.Submit(ctx)
		require.ErrorIs(t, err, forms.ErrNotLoggedIn)
		require.Zero(t, api.calls)
	})

	t.Run("required fields checked locally", func(t *testing.T) {
		api := &fakeAPI{token: true}
		f := forms.NewRegisterClient(api)
		f.Draft.FirstName = "Ann"

		_, err := f.Submit(ctx)
		require.ErrorIs(t, err, forms.ErrInvalid)
		require.Equal(t, "Last name is required. Email is required.", f.Err())
		require.Zero(t, api.calls)
		require.Equal(t, "Ann", f.Draft.FirstName)
	})

	t.Run("success clears draft", func(t *testing.T) {
		api := &fakeAPI{token: true}
		f := forms.NewRegisterClient(api)
		f.Draft = entity.ClientDraft{FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Gender: "Female"}

		c, err := f.Submit(ctx)
		require.NoError(t, err)
		require.Equal(t, "01JNEWCLIENT", c.ID)
		require.Equal(t, "01JNEWCLIENT", f.CreatedID())
		require.Equal(t, "Client registered successfully! (ID: 01JNEWCLIENT)", f.Notice())
		require.Equal(t, entity.ClientDraft{}, f.Draft)
		require.Equal(t, "Female", api.lastClient.Gender)
	})

	t.Run("failure keeps draft", func(t *testing.T) {
		api := &fakeAPI{token: true, err: &healthsdk.Error{Kind: healthsdk.KindConflict, Message: "Email already registered"}}
		f := forms.NewRegisterClient(api)
		draft := entity.ClientDraft{FirstName: "Ann", LastName: "Lee", Email: "ann@x.io"}
		f.Draft = draft

		_, err := f.Submit(ctx)
		require.ErrorIs(t, err, healthsdk.ErrConflict)
		require.Equal(t, "Email already registered", f.Err())
		require.Equal(t, draft, f.Draft)
		require.Empty(t, f.Notice())
	})
}

func TestCreateProgram(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	api := &fakeAPI{token: true}
	f := forms.NewCreateProgram(api)

	_, err := f.Submit(ctx)
	require.ErrorIs(t, err, forms.ErrInvalid)
	require.Equal(t, "Program name is required.", f.Err())
	require.Zero(t, api.calls)

	f.Draft = entity.ProgramDraft{Name: " HIV Care ", Description: "ART"}
	p, err := f.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, "HIV Care", p.Name)
	require.Equal(t, "HIV Care", api.lastProgram.Name)
	require.Empty(t, f.Err())
	require.Equal(t, "Program created successfully! (ID: 01JNEWPROGRAM)", f.Notice())
	require.Equal(t, entity.ProgramDraft{}, f.Draft)

	api.err = errors.New("connection reset")
	f.Draft.Name = "TB"
	_, err = f.Submit(ctx)
	require.Error(t, err)
	require.Equal(t, "Failed to create program.", f.Err())
	require.Equal(t, "TB", f.Draft.Name)
}

func TestEnrollClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	programs := []healthsdk.Program{{ID: "p1", Name: "HIV"}, {ID: "p2", Name: "TB"}}

	t.Run("choose by position or id", func(t *testing.T) {
		api := &fakeAPI{token: true, programs: programs}
		f := forms.NewEnrollClient(api, "c1")
		require.NoError(t, f.LoadPrograms(ctx))
		require.Len(t, f.Programs(), 2)

		require.NoError(t, f.Choose("2"))
		require.Equal(t, "p2", f.Draft.ProgramID)
		require.NoError(t, f.Choose("p1"))
		require.Equal(t, "p1", f.Draft.ProgramID)

		require.ErrorIs(t, f.Choose("9"), forms.ErrInvalid)
		require.Equal(t, "Please select a program.", f.Err())
		require.Empty(t, f.Draft.ProgramID)
	})

	t.Run("submit requires a program", func(t *testing.T) {
		api := &fakeAPI{token: true, programs: programs}
		f := forms.NewEnrollClient(api, "c1")

		require.ErrorIs(t, f.Submit(ctx), forms.ErrInvalid)
		require.Equal(t, "Please select a program.", f.Err())
		require.Zero(t, api.calls)
	})

	t.Run("success clears draft", func(t *testing.T) {
		api := &fakeAPI{token: true, programs: programs}
		f := forms.NewEnrollClient(api, "c1")
		require.NoError(t, f.LoadPrograms(ctx))
		require.NoError(t, f.Choose("1"))

		require.NoError(t, f.Submit(ctx))
		require.Equal(t, [2]string{"c1", "p1"}, api.lastEnroll)
		require.Equal(t, "Client enrolled successfully!", f.Notice())
		require.Equal(t, entity.EnrollmentDraft{}, f.Draft)
	})

	t.Run("already enrolled", func(t *testing.T) {
		api := &fakeAPI{token: true, err: &healthsdk.Error{Kind: healthsdk.KindConflict, Message: "Client is already enrolled in this program"}}
		f := forms.NewEnrollClient(api, "c1")
		f.Draft.ProgramID = "p1"

		require.ErrorIs(t, f.Submit(ctx), healthsdk.ErrConflict)
		require.Equal(t, "Client is already enrolled in this program", f.Err())
		require.Equal(t, "p1", f.Draft.ProgramID)
	})

	t.Run("no token", func(t *testing.T) {
		api := &fakeAPI{programs: programs}
		f := forms.NewEnrollClient(api, "c1")
		require.ErrorIs(t, f.LoadPrograms(ctx), forms.ErrNotLoggedIn)
		require.Equal(t, "Please log in to enroll a client.", f.Err())
		require.Zero(t, api.calls)
	})

	t.Run("program list failure", func(t *testing.T) {
		api := &fakeAPI{token: true, err: errors.New("down")}
		f := forms.NewEnrollClient(api, "c1")
		require.Error(t, f.LoadPrograms(ctx))
		require.Equal(t, "Failed to fetch programs.", f.Err())
	})
}
