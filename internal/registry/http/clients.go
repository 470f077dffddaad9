package http

import (
	"net/http"

	"github.com/aussiebroadwan/healthdesk/internal/registry/service"
	"github.com/aussiebroadwan/healthdesk/pkg/healthsdk"
	"github.com/aussiebroadwan/healthdesk/pkg/httpx"
	"github.com/aussiebroadwan/healthdesk/pkg/idx"
)

// ClientsHandler handles the client record endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// pathID validates the {id} path value. A value that is not a ULID can never
// match a record.
func pathID(r *http.Request, name string) (string, bool) {
	id, err := idx.Parse(r.PathValue(name))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// HandleList handles GET /api/clients
//
//	@Summary		List clients
//	@Description	Returns every client with their enrolled programs, oldest first.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		healthsdk.Client
//	@Failure		401	{object}	httpx.ErrorBody	"message"
//	@Failure		500	{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ClientService.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list clients")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClients(clients))
}

// HandleSearch handles GET /api/clients/search
//
//	@Summary		Search clients
//	@Description	Case-insensitive substring match on first name, last name or email. An empty q returns every client.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			q	query		string	false	"Search term"
//	@Success		200	{array}		healthsdk.Client
//	@Failure		401	{object}	httpx.ErrorBody	"message"
//	@Failure		500	{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients/search [get].
func (h *ClientsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ClientService.SearchClients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to search clients")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClients(clients))
}

// HandleGet handles GET /api/clients/{id}
//
//	@Summary		Get client
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Client ID"
//	@Success		200	{object}	healthsdk.Client
//	@Failure		401	{object}	httpx.ErrorBody	"message"
//	@Failure		404	{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
		return
	}

	c, err := h.ClientService.GetClient(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load client")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}

// HandleCreate handles POST /api/clients
//
//	@Summary		Register client
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		healthsdk.CreateClientRequest	true	"Client details"
//	@Success		201		{object}	healthsdk.Client
//	@Failure		400		{object}	httpx.ErrorBody	"message"
//	@Failure		401		{object}	httpx.ErrorBody	"message"
//	@Failure		409		{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req healthsdk.CreateClientRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	c, err := h.ClientService.CreateClient(r.Context(), fromCreateRequest(req))
	if err != nil {
		writeServiceError(w, r, err, "Failed to register client")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toClient(c))
}

// HandleUpdate handles PUT /api/clients/{id}
//
//	@Summary		Update client
//	@Description	Partial update: only the fields present in the body change.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Client ID"
//	@Param			request	body		healthsdk.UpdateClientRequest	true	"Fields to change"
//	@Success		200		{object}	healthsdk.Client
//	@Failure		400		{object}	httpx.ErrorBody	"message"
//	@Failure		401		{object}	httpx.ErrorBody	"message"
//	@Failure		404		{object}	httpx.ErrorBody	"message"
//	@Failure		409		{object}	httpx.ErrorBody	"message"
//	@Router			/api/clients/{id} [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgClientNotFound)
		return
	}

	var req healthsdk.UpdateClientRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	c, err := h.ClientService.UpdateClient(r.Context(), id, fromUpdateRequest(req))
	if err != nil {
		writeServiceError(w, r, err, "Failed to update client")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}
