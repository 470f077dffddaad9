package healthsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// rootURL drops a trailing /api so probes reach /livez and /readyz.
func (c *SDKClient) rootURL(path string) string {
	return strings.TrimSuffix(c.BaseURL, "/api") + path
}

func (c *SDKClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// doRequest sends one request. body, when non-nil, is sent as JSON. token,
// when non-empty, is sent as a bearer credential. Transport failures come
// back as *Error with KindNetwork.
func (c *SDKClient) doRequest(
	ctx context.Context,
	op operation,
	method, fullURL string,
	body any,
	token string,
) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, op.fail(KindUnknown, 0, "", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, rdr)
	if err != nil {
		return nil, op.fail(KindUnknown, 0, "", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, op.fail(KindNetwork, 0, "", err)
	}

	return resp, nil
}

// requireToken returns the current access token, or an unauthenticated error
// when there is none. Mutating calls check it before validating payloads.
func (c *Session) requireToken(ctx context.Context, op operation) (string, error) {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token(ctx)
	}
	if token == "" {
		return "", op.fail(KindUnauthenticated, 0, msgNotLoggedIn, nil)
	}
	return token, nil
}

// doAuthRequest performs an authenticated request. Without a token it fails
// before a request is built. A 401 clears the token source.
func (c *Session) doAuthRequest(
	ctx context.Context,
	op operation,
	method, path string,
	body any,
) (*http.Response, error) {
	token, err := c.requireToken(ctx, op)
	if err != nil {
		return nil, err
	}

	resp, err := c.sdk.doRequest(ctx, op, method, c.sdk.url(path), body, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.tokens.Clear(ctx)
	}

	return resp, nil
}

// decodeJSON turns a non-2xx response into an *Error and otherwise decodes
// the body into target (skipped when target is nil).
func decodeJSON(op operation, resp *http.Response, target any) error {
	return decodeBody(op, resp, target, false)
}

// decodeOptionalJSON is decodeJSON for acknowledgements: a 2xx with an empty
// body succeeds and leaves target untouched.
func decodeOptionalJSON(op operation, resp *http.Response, target any) error {
	return decodeBody(op, resp, target, true)
}

func decodeBody(op operation, resp *http.Response, target any, allowEmpty bool) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return op.fail(KindNetwork, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorResponse(op, resp.StatusCode, bodyBytes)
	}

	if target == nil {
		return nil
	}

	if allowEmpty && len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return op.fail(KindUnknown, resp.StatusCode, "", err)
	}

	return nil
}
