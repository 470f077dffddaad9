package healthsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the registry is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, opLiveness, http.MethodGet, c.rootURL("/livez"), nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(opLiveness, resp, &health); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the registry can serve requests.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, opReadiness, http.MethodGet, c.rootURL("/readyz"), nil, "")
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(opReadiness, resp, &health); err != nil {
		return nil, err
	}

	return &health, nil
}
