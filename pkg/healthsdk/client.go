package healthsdk

import (
	"context"
	"net/http"
	"strings"
)

// SDKClient is a client for the registry's unauthenticated endpoints.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client rooted at baseURL (the /api prefix included
// for resource routes; health probes strip it).
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// TokenSource supplies the bearer token for authenticated calls and is told
// to forget it when the registry rejects it. *tokenstore.Store satisfies it.
type TokenSource interface {
	Token(ctx context.Context) string
	Clear(ctx context.Context) error
}

// Session performs authenticated registry operations with the token its
// TokenSource currently holds.
type Session struct {
	sdk    *SDKClient
	tokens TokenSource
}

// WithTokens binds the SDKClient to a token source.
func (c *SDKClient) WithTokens(tokens TokenSource) *Session {
	return &Session{sdk: c, tokens: tokens}
}

// NewSession is shorthand for NewSDKClient(baseURL).WithTokens(tokens).
func NewSession(baseURL string, tokens TokenSource) *Session {
	return NewSDKClient(baseURL).WithTokens(tokens)
}

// SDK returns the unauthenticated client this Session wraps.
func (c *Session) SDK() *SDKClient {
	return c.sdk
}

// HasToken reports whether an authenticated call would be attempted.
func (c *Session) HasToken(ctx context.Context) bool {
	return c.tokens != nil && c.tokens.Token(ctx) != ""
}
