// Package settings is the program settings view: every program with its
// enrollment count, editable one at a time.
package settings

import (
	"context"
	"errors"
	"slices"

	"github.com/aussiebroadwan/healthdesk/internal/desk/dashboard"
	"github.com/aussiebroadwan/healthdesk/internal/desk/entity"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

const (
	msgProgramsFailed = "Failed to fetch programs."
	msgClientsFailed  = "Failed to fetch clients."
	msgUpdateFailed   = "Failed to update program."
	msgUpdated        = "Program updated."
)

var (
	ErrUnknownProgram = errors.New("settings: no such program")
	ErrNotEditing     = errors.New("settings: no program is being edited")
)

type API interface {
	ListPrograms(ctx context.Context) ([]healthsdk.Program, error)
	ListClients(ctx context.Context) ([]healthsdk.Client, error)
	UpdateProgram(ctx context.Context, id string, req healthsdk.ProgramRequest) (*healthsdk.Program, error)
}

// Row is one program line with its enrollment count.
type Row struct {
	Program  healthsdk.Program
	Enrolled int
}

type View struct {
	api API

	programs []healthsdk.Program
	clients  []healthsdk.Client

	editing string
	Draft   entity.ProgramDraft

	err    string
	notice string
}

func New(api API) *View {
	return &View{api: api}
}

func (v *View) Err() string    { return v.err }
func (v *View) Notice() string { return v.notice }

// Editing returns the id of the program being edited, or "".
func (v *View) Editing() string { return v.editing }

// Load fetches programs and clients. Clients only feed the counts, so a
// failure there still leaves the program list usable.
func (v *View) Load(ctx context.Context) error {
	v.err, v.notice = "", ""

	programs, err := v.api.ListPrograms(ctx)
	if err != nil {
		v.err = healthsdk.Message(err, msgProgramsFailed)
		return err
	}
	v.programs = programs

	clients, err := v.api.ListClients(ctx)
	if err != nil {
		v.err = healthsdk.Message(err, msgClientsFailed)
		v.clients = nil
		return err
	}
	v.clients = clients
	return nil
}

// Rows lists the programs in registry order with their counts.
func (v *View) Rows() []Row {
	counts := dashboard.ProgramCounts(v.clients, v.programs)
	rows := make([]Row, len(v.programs))
	for i, p := range v.programs {
		rows[i] = Row{Program: p, Enrolled: counts[i].Count}
	}
	return rows
}

// Edit starts editing program id.
func (v *View) Edit(id string) error {
	i := v.index(id)
	if i < 0 {
		return ErrUnknownProgram
	}
	v.editing = id
	v.Draft = entity.DraftFromProgram(v.programs[i])
	v.err, v.notice = "", ""
	return nil
}

func (v *View) Cancel() {
	v.editing = ""
	v.Draft = entity.ProgramDraft{}
}

// Save submits the draft and patches the one program in the local list.
func (v *View) Save(ctx context.Context) error {
	if v.editing == "" {
		return ErrNotEditing
	}

	updated, err := v.api.UpdateProgram(ctx, v.editing, v.Draft.Request())
	if err != nil {
		v.err = healthsdk.Message(err, msgUpdateFailed)
		return err
	}

	if i := v.index(v.editing); i >= 0 {
		v.programs = slices.Clone(v.programs)
		v.programs[i] = *updated
	}
	v.Cancel()
	v.err, v.notice = "", msgUpdated
	return nil
}

func (v *View) index(id string) int {
	return slices.IndexFunc(v.programs, func(p healthsdk.Program) bool { return p.ID == id })
}
