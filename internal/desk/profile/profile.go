// Package profile is the client detail and edit view.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/healthdesk/internal/desk/entity"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

const (
	msgLoadFailed     = "Failed to load client profile."
	msgUpdateFailed   = "Failed to update client."
	msgUnenrollFailed = "Failed to unenroll client."

	msgUpdated    = "Client updated."
	msgUnenrolled = "Client unenrolled from %s."
)

// ErrWrongMode is returned when an action is not valid in the current mode.
var ErrWrongMode = errors.New("profile: action not allowed in current mode")

type Mode int

const (
	Loading Mode = iota
	Viewing
	Editing
	Unenrolling
	Failed
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Unenrolling:
		return "unenrolling"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// API is the slice of the registry client the view needs.
type API interface {
	GetClient(ctx context.Context, id string) (*healthsdk.Client, error)
	UpdateClient(ctx context.Context, id string, req healthsdk.UpdateClientRequest) (*healthsdk.Client, error)
	DeleteEnrollment(ctx context.Context, clientID, programID string) error
}

// View shows one client. Not safe for concurrent use; a screen drives it
// from one goroutine.
type View struct {
	api API
	id  string

	mode        Mode
	client      healthsdk.Client
	draft       entity.ClientDraft
	unenrolling string

	err    string
	notice string
}

// New returns a view for client id in the Loading mode. Call Load.
func New(api API, id string) *View {
	return &View{api: api, id: id, mode: Loading}
}

func (v *View) Mode() Mode { return v.mode }

// Client returns a copy of the displayed record.
func (v *View) Client() healthsdk.Client { return entity.CloneClient(v.client) }

// Draft is the edit form. Only meaningful while Editing.
func (v *View) Draft() *entity.ClientDraft { return &v.draft }

// Err is the banner message from the last failed action, if any.
func (v *View) Err() string { return v.err }

// Notice is the confirmation from the last successful mutation, if any.
func (v *View) Notice() string { return v.notice }

// UnenrollingProgram is the program being removed while Unenrolling.
func (v *View) UnenrollingProgram() string { return v.unenrolling }

// Load fetches the client. On failure the view stays Failed until Load is
// called again; nothing retries by itself.
func (v *View) Load(ctx context.Context) error {
	v.mode = Loading
	v.err, v.notice = "", ""

	c, err := v.api.GetClient(ctx, v.id)
	if err != nil {
		v.mode = Failed
		v.err = healthsdk.Message(err, msgLoadFailed)
		slogx.FromContext(slogx.WithClientID(ctx, v.id)).Warn("profile: load failed", "err", err)
		return err
	}

	v.client = entity.CloneClient(*c)
	v.mode = Viewing
	return nil
}

// Edit copies the displayed record into a fresh draft.
func (v *View) Edit() error {
	if v.mode != Viewing {
		return ErrWrongMode
	}
	v.draft = entity.DraftFromClient(v.client)
	v.err, v.notice = "", ""
	v.mode = Editing
	return nil
}

// Cancel throws the draft away. The displayed record was never touched.
func (v *View) Cancel() error {
	if v.mode != Editing {
		return ErrWrongMode
	}
	v.draft = entity.ClientDraft{}
	v.err = ""
	v.mode = Viewing
	return nil
}

// Save submits the draft. On success the displayed record reflects the save
// and the view returns to Viewing; on failure it stays Editing with the
// draft intact.
func (v *View) Save(ctx context.Context) error {
	if v.mode != Editing {
		return ErrWrongMode
	}

	updated, err := v.api.UpdateClient(ctx, v.id, v.draft.UpdateRequest())
	if err != nil {
		v.err = healthsdk.Message(err, msgUpdateFailed)
		return err
	}

	next := v.draft.Apply(v.client)
	if updated != nil && updated.ID != "" {
		next = entity.CloneClient(*updated)
		if next.Programs == nil {
			next.Programs = entity.CloneClient(v.client).Programs
		}
	}

	v.client = next
	v.draft = entity.ClientDraft{}
	v.err, v.notice = "", msgUpdated
	v.mode = Viewing
	return nil
}

// Unenroll removes programID from the client. The displayed program set is
// patched only once the registry has confirmed.
func (v *View) Unenroll(ctx context.Context, programID string) error {
	if v.mode != Viewing {
		return ErrWrongMode
	}

	name := programID
	for _, p := range v.client.Programs {
		if p.ID == programID {
			name = p.Name
		}
	}

	v.mode = Unenrolling
	v.unenrolling = programID
	defer func() {
		v.mode = Viewing
		v.unenrolling = ""
	}()

	if err := v.api.DeleteEnrollment(ctx, v.id, programID); err != nil {
		v.err = healthsdk.Message(err, msgUnenrollFailed)
		return err
	}

	v.client = entity.WithoutProgram(v.client, programID)
	v.err, v.notice = "", fmt.Sprintf(msgUnenrolled, name)
	return nil
}
