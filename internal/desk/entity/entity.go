// Package entity shapes desk form input into registry payloads.
//
// Drafts are plain values. A draft taken from a displayed record shares
// nothing with it, so editing the draft never changes what is on screen.
package entity

import (
	"slices"
	"strings"

	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

// ClientDraft is an editable copy of a client's own fields.
type ClientDraft struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	DateOfBirth      string
	Address          string
	Gender           string
	EmergencyContact string
}

// DraftFromClient copies the editable fields of c.
func DraftFromClient(c healthsdk.Client) ClientDraft {
	return ClientDraft{
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		DateOfBirth:      c.DateOfBirth,
		Address:          c.Address,
		Gender:           c.Gender,
		EmergencyContact: c.EmergencyContact,
	}
}

func (d ClientDraft) trimmed() ClientDraft {
	return ClientDraft{
		FirstName:        strings.TrimSpace(d.FirstName),
		LastName:         strings.TrimSpace(d.LastName),
		Email:            strings.TrimSpace(d.Email),
		Phone:            strings.TrimSpace(d.Phone),
		DateOfBirth:      strings.TrimSpace(d.DateOfBirth),
		Address:          strings.TrimSpace(d.Address),
		Gender:           strings.TrimSpace(d.Gender),
		EmergencyContact: strings.TrimSpace(d.EmergencyContact),
	}
}

// CreateRequest is the registration payload for d.
func (d ClientDraft) CreateRequest() healthsdk.CreateClientRequest {
	t := d.trimmed()
	return healthsdk.CreateClientRequest{
		FirstName:        t.FirstName,
		LastName:         t.LastName,
		Email:            t.Email,
		Phone:            t.Phone,
		DateOfBirth:      t.DateOfBirth,
		Address:          t.Address,
		Gender:           t.Gender,
		EmergencyContact: t.EmergencyContact,
	}
}

// UpdateRequest carries every field the profile form may change. An empty
// date of birth is left out rather than sent as "".
func (d ClientDraft) UpdateRequest() healthsdk.UpdateClientRequest {
	t := d.trimmed()
	req := healthsdk.UpdateClientRequest{
		FirstName:        &t.FirstName,
		LastName:         &t.LastName,
		Email:            &t.Email,
		Phone:            &t.Phone,
		Address:          &t.Address,
		Gender:           &t.Gender,
		EmergencyContact: &t.EmergencyContact,
	}
	if t.DateOfBirth != "" {
		req.DateOfBirth = &t.DateOfBirth
	}
	return req
}

// ValidateCreate returns the field problems that block registration.
func (d ClientDraft) ValidateCreate() healthsdk.FieldErrors {
	return d.CreateRequest().Validate()
}

// ValidateUpdate returns the field problems that block a profile save.
func (d ClientDraft) ValidateUpdate() healthsdk.FieldErrors {
	return d.UpdateRequest().Validate()
}

// Apply returns c with the draft's fields written over it. The result has
// its own Programs slice.
func (d ClientDraft) Apply(c healthsdk.Client) healthsdk.Client {
	out := CloneClient(c)
	t := d.trimmed()
	out.FirstName = t.FirstName
	out.LastName = t.LastName
	out.Email = t.Email
	out.Phone = t.Phone
	if t.DateOfBirth != "" {
		out.DateOfBirth = t.DateOfBirth
	}
	out.Address = t.Address
	out.Gender = t.Gender
	out.EmergencyContact = t.EmergencyContact
	return out
}

// CloneClient deep-copies c.
func CloneClient(c healthsdk.Client) healthsdk.Client {
	c.Programs = slices.Clone(c.Programs)
	return c
}

// WithoutProgram returns c minus exactly programID. Other programs keep
// their order.
func WithoutProgram(c healthsdk.Client, programID string) healthsdk.Client {
	out := CloneClient(c)
	out.Programs = slices.DeleteFunc(out.Programs, func(p healthsdk.Program) bool {
		return p.ID == programID
	})
	return out
}

// ProgramDraft is the create or edit form for a program.
type ProgramDraft struct {
	Name        string
	Description string
}

// DraftFromProgram copies p's editable fields.
func DraftFromProgram(p healthsdk.Program) ProgramDraft {
	return ProgramDraft{Name: p.Name, Description: p.Description}
}

func (d ProgramDraft) Request() healthsdk.ProgramRequest {
	return healthsdk.ProgramRequest{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
	}
}

func (d ProgramDraft) Validate() healthsdk.FieldErrors {
	return d.Request().Validate()
}

// EnrollmentDraft is the pair picked on the enroll form.
type EnrollmentDraft struct {
	ClientID  string
	ProgramID string
}

func (d EnrollmentDraft) Request() healthsdk.EnrollmentRequest {
	return healthsdk.EnrollmentRequest{
		ClientID:  strings.TrimSpace(d.ClientID),
		ProgramID: strings.TrimSpace(d.ProgramID),
	}
}

func (d EnrollmentDraft) Validate() healthsdk.FieldErrors {
	return d.Request().Validate()
}
