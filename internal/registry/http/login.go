package http

import (
	"net/http"

	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles POST /api/login
//
//	@Summary		Staff login
//	@Description	Exchanges a staff username and password for a bearer access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		healthsdk.LoginRequest		true	"Staff credentials"
//	@Success		200		{object}	healthsdk.LoginResponse		"access_token"
//	@Failure		400		{object}	httpx.ErrorBody				"message"
//	@Failure		401		{object}	httpx.ErrorBody				"message"
//	@Failure		429		{object}	httpx.ErrorBody				"message"
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "Login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, healthsdk.LoginResponse{AccessToken: token})
}
