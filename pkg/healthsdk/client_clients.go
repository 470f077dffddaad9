package healthsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Client Record Operations
// ============================================================================

// ListClients returns every client in registration order.
func (c *Session) ListClients(ctx context.Context) ([]Client, error) {
	resp, err := c.doAuthRequest(ctx, opListClients, http.MethodGet, "/clients", nil)
	if err != nil {
		return nil, err
	}

	var out []Client
	if err := decodeJSON(opListClients, resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchClients returns clients whose first name, last name or email
// contains q, ignoring case. An empty q matches everyone.
func (c *Session) SearchClients(ctx context.Context, q string) ([]Client, error) {
	path := "/clients/search?q=" + url.QueryEscape(q)

	resp, err := c.doAuthRequest(ctx, opSearchClients, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out []Client
	if err := decodeJSON(opSearchClients, resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClient returns one client with its programs.
func (c *Session) GetClient(ctx context.Context, id string) (*Client, error) {
	resp, err := c.doAuthRequest(ctx, opGetClient, http.MethodGet, "/clients/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var out Client
	if err := decodeJSON(opGetClient, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient registers a client and returns it with its assigned id.
func (c *Session) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	if _, err := c.requireToken(ctx, opCreateClient); err != nil {
		return nil, err
	}
	if fields := req.Validate(); fields != nil {
		return nil, opCreateClient.invalid(fields)
	}

	resp, err := c.doAuthRequest(ctx, opCreateClient, http.MethodPost, "/clients", req)
	if err != nil {
		return nil, err
	}

	var out Client
	if err := decodeJSON(opCreateClient, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateClient changes the fields set in req and returns the updated record.
func (c *Session) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	if _, err := c.requireToken(ctx, opUpdateClient); err != nil {
		return nil, err
	}
	if fields := req.Validate(); fields != nil {
		return nil, opUpdateClient.invalid(fields)
	}

	resp, err := c.doAuthRequest(ctx, opUpdateClient, http.MethodPut, "/clients/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var out Client
	if err := decodeJSON(opUpdateClient, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
