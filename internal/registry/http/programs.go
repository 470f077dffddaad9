package http

import (
	"net/http"

	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
)

type ProgramsHandler struct {
	ProgramService *service.ProgramService
}

// HandleList handles GET /api/programs
//
//	@Summary		List programs
//	@Tags			Programs
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		healthsdk.Program
//	@Failure		401	{object}	httpx.ErrorBody	"message"
//	@Router			/api/programs [get].
func (h *ProgramsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	programs, err := h.ProgramService.ListPrograms(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list programs")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPrograms(programs))
}

// HandleCreate handles POST /api/programs
//
//	@Summary		Create program
//	@Tags			Programs
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		healthsdk.ProgramRequest	true	"Program"
//	@Success		201		{object}	healthsdk.Program
//	@Failure		400		{object}	httpx.ErrorBody	"message"
//	@Failure		401		{object}	httpx.ErrorBody	"message"
//	@Router			/api/programs [post].
func (h *ProgramsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.ProgramRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	p, err := h.ProgramService.CreateProgram(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create program")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProgram(p))
}

// HandleUpdate handles PUT /api/programs/{id}
//
//	@Summary		Update program
//	@Description	Replaces the program's name and description.
//	@Tags			Programs
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Program ID"
//	@Param			request	body		healthsdk.ProgramRequest	true	"Program"
//	@Success		200		{object}	healthsdk.Program
//	@Failure		400		{object}	httpx.ErrorBody	"message"
//	@Failure		401		{object}	httpx.ErrorBody	"message"
//	@Failure		404		{object}	httpx.ErrorBody	"message"
//	@Router			/api/programs/{id} [put].
func (h *ProgramsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgProgramNotFound)
		return
	}

	var req healthsdk.ProgramRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	p, err := h.ProgramService.UpdateProgram(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update program")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProgram(p))
}
