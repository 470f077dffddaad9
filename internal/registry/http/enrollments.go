package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
	"github.com/aussiebroadwan/healthdesk/pkg/idx"
)

type EnrollmentsHandler struct {
	EnrollmentService *service.EnrollmentService
}

// HandleCreate handles POST /api/clients/{id}/programs
//
//	@Summary		Enroll client
//	@Tags			Enrollments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Client ID"
//	@Param			request	body		healthsdk.EnrollmentRequest	true	"program_id"
//	@Success		201		{object}	healthsdk.MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody	"message"
//	@Failure		401		{object}	httpx.ErrorBody	"message"
//	@Failure		404		{object}	httpx.ErrorBody	"message"
//	@Failure		409		{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients/{id}/programs [post].
func (h *EnrollmentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(r, "id")
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
		return
	}

	var req healthsdk.EnrollmentRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if strings.TrimSpace(req.ProgramID) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "program_id is required")
		return
	}
	programID, err := idx.Parse(req.ProgramID)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgProgramNotFound)
		return
	}

	if err := h.EnrollmentService.Enroll(r.Context(), clientID, programID.String()); err != nil {
		writeServiceError(w, r, err, "Failed to enroll client")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, healthsdk.MessageResponse{Message: "Client enrolled in program"})
}

// HandleDelete handles DELETE /api/clients/{id}/programs/{program_id}
//
//	@Summary		Unenroll client
//	@Tags			Enrollments
//	@Security		BearerAuth
//	@Param			id			path	string	true	"Client ID"
//	@Param			program_id	path	string	true	"Program ID"
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorBody	"message"
//	@Failure		404	{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients/{id}/programs/{program_id} [delete].
func (h *EnrollmentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	clientID, ok1 := pathID(r, "id")
	programID, ok2 := pathID(r, "program_id")
	if !ok1 || !ok2 {
		httpx.WriteError(w, http.StatusNotFound, "Client is not enrolled in this program")
		return
	}

	if err := h.EnrollmentService.Unenroll(r.Context(), clientID, programID); err != nil {
		writeServiceError(w, r, err, "Failed to unenroll client")
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
