package healthsdk

import (
	"context"
	"net/http"
)

// Login exchanges staff credentials for a bearer token. Storing the token is
// the caller's job; see tokenstore.Store.SetToken.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if fields := req.Validate(); fields != nil {
		return nil, opLogin.invalid(fields)
	}

	resp, err := c.doRequest(ctx, opLogin, http.MethodPost, c.url("/login"), req, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(opLogin, resp, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, opLogin.fail(KindUnknown, resp.StatusCode, "", nil)
	}

	return &out, nil
}

// Login is SDKClient.Login for callers holding a Session.
func (c *Session) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	return c.sdk.Login(ctx, req)
}
