package http

import (
	"github.com/aussiebroadwan/healthdesk/internal/registry/domain"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
)

func toProgram(p domain.Program) healthsdk.Program {
	return healthsdk.Program{ID: p.ID, Name: p.Name, Description: p.Description}
}

func toPrograms(ps []domain.Program) []healthsdk.Program {
	out := make([]healthsdk.Program, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProgram(p))
	}
	return out
}

func toClient(c domain.Client) healthsdk.Client {
	return healthsdk.Client{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		DateOfBirth:      c.DateOfBirth,
		Address:          c.Address,
		Gender:           c.Gender,
		EmergencyContact: c.EmergencyContact,
		CreatedAt:        c.CreatedAt.UTC(),
		Programs:         toPrograms(c.Programs),
	}
}

func toClients(cs []domain.Client) []healthsdk.Client {
	out := make([]healthsdk.Client, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClient(c))
	}
	return out
}

func fromCreateRequest(req healthsdk.CreateClientRequest) domain.Client {
	return domain.Client{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
	}
}

func fromUpdateRequest(req healthsdk.UpdateClientRequest) domain.ClientPatch {
	return domain.ClientPatch{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		DateOfBirth:      req.DateOfBirth,
		Address:          req.Address,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
	}
}
