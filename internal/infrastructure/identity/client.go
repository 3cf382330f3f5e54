// Package identity provides implementations of ports.IdentityStore: an HTTP
// client for the hosted identity service and a local in-process store for
// development and tests.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

const clientTimeout = 10 * time.Second

// Client talks to the hosted identity service's REST API. Token resolution
// uses the anon key plus the caller's bearer token; admin operations use the
// service-role key. Neither key nor any user token is ever logged.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	http       *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL, anonKey, serviceKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: clientTimeout},
		log:        log,
	}
}

type identityPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ResolveToken resolves a bearer token to the identity it was issued for.
// Any 4xx from the service collapses to ErrInvalidToken; network failures and
// 5xx are transient and wrapped with ErrServiceUnavailable for the verifier.
func (c *Client) ResolveToken(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload identityPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("resolve token: decode: %w", err)
		}
		if payload.ID == "" {
			return nil, domain.ErrInvalidToken
		}
		return &domain.Identity{ID: payload.ID, Email: payload.Email}, nil
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("resolve token: %w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	default:
		return nil, domain.ErrInvalidToken
	}
}

// FindByEmail scans the admin user listing for a matching email. The service
// paginates; pages are walked until a match or the end.
func (c *Client) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	for page := 1; ; page++ {
		var listing struct {
			Users []identityPayload `json:"users"`
		}
		path := fmt.Sprintf("/auth/v1/admin/users?page=%d&per_page=100", page)
		if err := c.adminRequest(ctx, http.MethodGet, path, nil, &listing); err != nil {
			return nil, err
		}
		for _, u := range listing.Users {
			if u.Email == email {
				return &domain.Identity{ID: u.ID, Email: u.Email}, nil
			}
		}
		if len(listing.Users) < 100 {
			return nil, nil
		}
	}
}

func (c *Client) Create(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	body := map[string]any{
		"email":         in.Email,
		"password":      in.Password,
		"email_confirm": in.EmailConfirm,
		"user_metadata": in.Metadata,
	}

	var payload identityPayload
	if err := c.adminRequest(ctx, http.MethodPost, "/auth/v1/admin/users", body, &payload); err != nil {
		return nil, err
	}
	return &domain.Identity{ID: payload.ID, Email: payload.Email}, nil
}

func (c *Client) Update(ctx context.Context, id string, in ports.UpdateIdentityInput) error {
	body := map[string]any{}
	if in.Email != nil {
		body["email"] = *in.Email
	}
	if in.Password != nil {
		body["password"] = *in.Password
	}
	if in.Metadata != nil {
		body["user_metadata"] = in.Metadata
	}
	return c.adminRequest(ctx, http.MethodPut, "/auth/v1/admin/users/"+id, body, nil)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.adminRequest(ctx, http.MethodDelete, "/auth/v1/admin/users/"+id, nil, nil)
}

func (c *Client) GenerateRecoveryLink(ctx context.Context, email, redirectTo string) (string, error) {
	body := map[string]any{
		"type":        "recovery",
		"email":       email,
		"redirect_to": redirectTo,
	}

	var payload struct {
		ActionLink string `json:"action_link"`
	}
	if err := c.adminRequest(ctx, http.MethodPost, "/auth/v1/admin/generate_link", body, &payload); err != nil {
		return "", err
	}
	return payload.ActionLink, nil
}

// adminRequest performs a service-role request and decodes the response into
// out when it is non-nil.
func (c *Client) adminRequest(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("identity request: encode: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity request: %w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("identity request: decode: %w", err)
			}
		}
		return nil
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return domain.ErrUserExists
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrUserNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("identity request: %w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	default:
		var svcErr struct {
			Message string `json:"msg"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&svcErr)
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("identity service rejected request")
		return fmt.Errorf("identity service: status %d: %s", resp.StatusCode, svcErr.Message)
	}
}
