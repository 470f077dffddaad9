package healthsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateEnrollment enrolls a client in a program. Whether a repeat
// enrollment is an error is the registry's decision; it currently answers
// 409, which surfaces as ErrConflict. A 2xx without a body is success with an
// empty message.
func (c *Session) CreateEnrollment(ctx context.Context, clientID, programID string) (*MessageResponse, error) {
	if _, err := c.requireToken(ctx, opCreateEnrollment); err != nil {
		return nil, err
	}

	req := EnrollmentRequest{ClientID: clientID, ProgramID: programID}
	if fields := req.Validate(); fields != nil {
		return nil, opCreateEnrollment.invalid(fields)
	}

	path := "/clients/" + url.PathEscape(clientID) + "/programs"
	resp, err := c.doAuthRequest(ctx, opCreateEnrollment, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeOptionalJSON(opCreateEnrollment, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEnrollment removes a client from a program. Any 2xx is success.
func (c *Session) DeleteEnrollment(ctx context.Context, clientID, programID string) error {
	if _, err := c.requireToken(ctx, opDeleteEnrollment); err != nil {
		return err
	}

	req := EnrollmentRequest{ClientID: clientID, ProgramID: programID}
	if fields := req.Validate(); fields != nil {
		return opDeleteEnrollment.invalid(fields)
	}

	path := "/clients/" + url.PathEscape(clientID) + "/programs/" + url.PathEscape(programID)
	resp, err := c.doAuthRequest(ctx, opDeleteEnrollment, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	return decodeJSON(opDeleteEnrollment, resp, nil)
}
