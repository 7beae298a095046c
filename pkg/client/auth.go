package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Register creates a new user account via POST /register.
//
// A 400 response is reported as a domain error carrying the server detail
// when present ("Registration failed: Username already registered" by
// default). Any other non-200 status is a transport error.
func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	const endpoint = "/register"

	payload, err := json.Marshal(creds)
	if err != nil {
		return nil, newValidationError("encode registration request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, newTransportError(0, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user User
		if err := c.decode(resp, endpoint, &user); err != nil {
			return nil, err
		}
		return &user, nil

	case http.StatusBadRequest:
		return nil, c.domainError(resp, endpoint,
			"Registration failed: ", "Username already registered")

	default:
		return nil, c.unexpectedStatus(resp, endpoint)
	}
}

// TryRegister is the sentinel variant of Register: any failure is logged as
// a diagnostic and reported as a nil result.
func (c *Client) TryRegister(ctx context.Context, creds Credentials) *User {
	user, err := c.Register(ctx, creds)
	if err != nil {
		c.logger.Error().Err(err).Str("username", creds.Username).Msg("Registration failed")
		return nil
	}
	return user
}

// Login exchanges credentials for a bearer token via POST /login. The
// request is form-encoded; the response is JSON.
//
// A 400 or 401 response is reported as a domain error. A 200 response
// missing the access_token field is a validation error.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Token, error) {
	const endpoint = "/login"

	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, newTransportError(0, "create request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var token Token
		if err := c.decode(resp, endpoint, &token); err != nil {
			return nil, err
		}
		if token.AccessToken == "" {
			pollyErrorsTotal.WithLabelValues(string(ErrorClassValidation)).Inc()
			return nil, newValidationError("missing access_token in login response", nil)
		}
		return &token, nil

	case http.StatusBadRequest, http.StatusUnauthorized:
		return nil, c.domainError(resp, endpoint,
			"Login failed: ", "Incorrect username or password")

	default:
		return nil, c.unexpectedStatus(resp, endpoint)
	}
}

// TryLogin is the sentinel variant of Login: any failure is logged as a
// diagnostic and reported as a nil result.
func (c *Client) TryLogin(ctx context.Context, creds Credentials) *Token {
	token, err := c.Login(ctx, creds)
	if err != nil {
		c.logger.Error().Err(err).Str("username", creds.Username).Msg("Login failed")
		return nil
	}
	return token
}
