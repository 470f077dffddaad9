package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
	"github.com/aussiebroadwan/healthdesk/pkg/slogx"
)

const (
	msgInvalidJSON     = "Invalid JSON in request body"
	msgClientNotFound  = "Client not found"
	msgProgramNotFound = "Program not found"
)

// writeServiceError maps a service error to a status and message. Anything
// unrecognised is logged and answered 500 with fallback.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrClientNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
	case errors.Is(err, service.ErrProgramNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgProgramNotFound)
	case errors.Is(err, service.ErrNotEnrolled):
		httpx.WriteError(w, http.StatusNotFound, "Client is not enrolled in this program")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "A client with this email already exists")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		httpx.WriteError(w, http.StatusConflict, "Client is already enrolled in this program")
	default:
		slogx.FromContext(r.Context()).Error(fallback, "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
