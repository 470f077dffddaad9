package healthsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListPrograms returns every program in creation order.
func (c *Session) ListPrograms(ctx context.Context) ([]Program, error) {
	resp, err := c.doAuthRequest(ctx, opListPrograms, http.MethodGet, "/programs", nil)
	if err != nil {
		return nil, err
	}

	var out []Program
	if err := decodeJSON(opListPrograms, resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProgram creates a program and returns it with its assigned id.
func (c *Session) CreateProgram(ctx context.Context, req ProgramRequest) (*Program, error) {
	if _, err := c.requireToken(ctx, opCreateProgram); err != nil {
		return nil, err
	}
	if fields := req.Validate(); fields != nil {
		return nil, opCreateProgram.invalid(fields)
	}

	resp, err := c.doAuthRequest(ctx, opCreateProgram, http.MethodPost, "/programs", req)
	if err != nil {
		return nil, err
	}

	var out Program
	if err := decodeJSON(opCreateProgram, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProgram replaces a program's name and description.
func (c *Session) UpdateProgram(ctx context.Context, id string, req ProgramRequest) (*Program, error) {
	if _, err := c.requireToken(ctx, opUpdateProgram); err != nil {
		return nil, err
	}
	if fields := req.Validate(); fields != nil {
		return nil, opUpdateProgram.invalid(fields)
	}

	resp, err := c.doAuthRequest(ctx, opUpdateProgram, http.MethodPut, "/programs/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var out Program
	if err := decodeJSON(opUpdateProgram, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
