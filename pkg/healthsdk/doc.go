/*
Package healthsdk is the client for the healthdesk registry REST API.

# SDKClient vs Session

SDKClient talks to the public endpoints (login, health probes). Session binds an
SDKClient to a TokenSource and exposes every authenticated operation:

	sdk := healthsdk.NewSDKClient("http://localhost:8080/api")

	login, err := sdk.Login(ctx, healthsdk.LoginRequest{Username: "doctor", Password: pw})
	_ = tokens.SetToken(ctx, login.AccessToken, remember)

	api := sdk.WithTokens(tokens)
	clients, err := api.SearchClients(ctx, "smith")

# Errors

Every failure is an *Error carrying a Kind and a message fit to show a
user. The message comes from the registry's "message" or "error" field when
present, otherwise from a fixed per-operation fallback:

	_, err := api.CreateClient(ctx, req)
	switch {
	case errors.Is(err, healthsdk.ErrConflict):
		// duplicate email; err.Error() is the registry's message
	case errors.Is(err, healthsdk.ErrUnauthenticated):
		// token missing or rejected; the TokenSource has been cleared
	}

Calls made without a token fail with ErrUnauthenticated before any request
is built, and payloads that fail Validate fail with ErrValidation without
touching the network.

# Behaviour

Each method is one round trip. There are no retries, no response caching
and no timeout beyond what the caller's context and http.Client impose.
*/
package healthsdk
