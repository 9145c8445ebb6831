// Package api implements the HTTP client for the AteliêPerto backend. It
// speaks plain JSON over HTTP and maps transport and status failures onto the
// error vocabulary the rest of the client understands.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atelieperto/atelieperto/internal/client/models"
	"github.com/atelieperto/atelieperto/internal/common"
)

// Client talks to one backend endpoint. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL, e.g. "http://127.0.0.1:8080".
// The timeout bounds every request including body read.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates against the backend. Rejected credentials come back as
// common.ErrInvalidCredentials; a dead or misbehaving server maps to
// common.ErrUnavailable so the caller can tell the two apart.
func (c *Client) Login(ctx context.Context, username string, password string) (*models.User, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user models.User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("decoding login response: %w", err)
		}
		return &user, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return nil, common.ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	}
}

// Providers fetches the full directory listing.
func (c *Client) Providers(ctx context.Context) ([]models.Provider, error) {
	var list []models.Provider
	if err := c.getJSON(ctx, "/api/providers", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Featured fetches the featured subset of the directory.
func (c *Client) Featured(ctx context.Context) ([]models.Provider, error) {
	var list []models.Provider
	if err := c.getJSON(ctx, "/api/providers/featured", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Profile fetches the full record for one provider. An unknown id yields
// common.ErrorNotFound.
func (c *Client) Profile(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	if err := c.getJSON(ctx, fmt.Sprintf("/api/providers/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ping checks backend liveness.
func (c *Client) Ping(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	return c.getJSON(ctx, "/api/healthz", &status)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return common.ErrorNotFound
	default:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	}
}
