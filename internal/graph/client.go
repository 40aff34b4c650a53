// Package graph is a thin HTTP client for the upstream directory service.
// It speaks the provider's Graph-style REST dialect: paged collections with
// @odata.nextLink continuation links and $select field projection.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"tenant-api/internal/config"
	"tenant-api/internal/domain"
)

// Field projections requested from the upstream list endpoints.
const (
	userSelect  = "id,displayName,userPrincipalName,mailNickname,createdDateTime"
	groupSelect = "id,displayName,description,mailNickname,createdDateTime"
)

const defaultWriteRetries = 5

// Client implements domain.DirectoryClient over HTTP.
type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	logger       *slog.Logger
	userRetries  uint64
	groupRetries uint64
}

// NewClient creates a directory client. httpClient may be nil, in which case
// a client with a 30s timeout is used.
func NewClient(cfg config.GraphConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	userRetries := cfg.UserMaxRetries
	if userRetries <= 0 {
		userRetries = 5
	}
	groupRetries := cfg.GroupMaxRetries
	if groupRetries <= 0 {
		groupRetries = 7
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		token:        cfg.Token,
		httpClient:   httpClient,
		logger:       logger,
		userRetries:  uint64(userRetries),
		groupRetries: uint64(groupRetries),
	}
}

// do executes one HTTP call with bounded retry. Transport errors, 429 and
// 5xx responses are retried with exponential backoff; any other non-2xx
// response is terminal and surfaces as a domain.UpstreamError. When out is
// non-nil the 2xx response body is decoded into it.
func (c *Client) do(ctx context.Context, method, url string, payload, out any, maxRetries uint64) error {
	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, url, err)
		}
	}

	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return err
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.logger.Warn("upstream call will be retried",
				"method", method, "url", url, "status", resp.StatusCode)
			return retry.RetryableError(upstreamError(resp))
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return upstreamError(resp)
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("decode %s %s: %w", method, url, err)
			}
		}
		return nil
	})
}

// upstreamError reads the provider's error envelope and wraps it, keeping
// the provider status code for passthrough.
func upstreamError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var envelope apiError
	msg := ""
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	} else {
		msg = http.StatusText(resp.StatusCode)
	}
	return domain.ErrUpstream(resp.StatusCode, "%s", msg)
}

// ListUsers returns a pager over the full upstream user collection.
func (c *Client) ListUsers() domain.UserPager {
	return &userPager{c: c}
}

// ListGroups returns a pager over the full upstream group collection.
func (c *Client) ListGroups() domain.GroupPager {
	return &groupPager{c: c}
}

// CreateUser creates a user upstream and returns the provider's view of it.
func (c *Client) CreateUser(ctx context.Context, u domain.NewDirectoryUser) (*domain.User, error) {
	payload := createUserPayload{
		AccountEnabled:    true,
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		MailNickname:      u.MailNickname,
		PasswordProfile: passwordProfile{
			ForceChangePasswordNextSignIn: true,
			Password:                      u.Password,
		},
	}
	var created userResource
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/users", payload, &created, defaultWriteRetries); err != nil {
		return nil, err
	}
	user := userToDomain(created)
	return &user, nil
}

// UpdateUser sends a partial update of the mutable user fields.
func (c *Client) UpdateUser(ctx context.Context, id string, u domain.UserUpdate) error {
	payload := updateUserPayload{
		DisplayName:       u.DisplayName,
		UserPrincipalName: u.UserPrincipalName,
		MailNickname:      u.MailNickname,
	}
	return c.do(ctx, http.MethodPatch, c.baseURL+"/users/"+id, payload, nil, defaultWriteRetries)
}

// DeleteUser deletes the user upstream.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/users/"+id, nil, nil, defaultWriteRetries)
}

// CreateGroup creates a unified group upstream.
func (c *Client) CreateGroup(ctx context.Context, g domain.NewDirectoryGroup) (*domain.Group, error) {
	payload := createGroupPayload{
		DisplayName:     g.DisplayName,
		Description:     g.Description,
		MailNickname:    g.MailNickname,
		MailEnabled:     true,
		GroupTypes:      []string{"Unified"},
		SecurityEnabled: false,
	}
	var created groupResource
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/groups", payload, &created, defaultWriteRetries); err != nil {
		return nil, err
	}
	group := groupToDomain(created)
	return &group, nil
}

// UpdateGroup sends a partial update of the mutable group fields.
func (c *Client) UpdateGroup(ctx context.Context, id string, g domain.GroupUpdate) error {
	payload := updateGroupPayload{
		DisplayName:  g.DisplayName,
		Description:  g.Description,
		MailNickname: g.MailNickname,
	}
	return c.do(ctx, http.MethodPatch, c.baseURL+"/groups/"+id, payload, nil, defaultWriteRetries)
}

// DeleteGroup deletes the group upstream.
func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/groups/"+id, nil, nil, defaultWriteRetries)
}

// Compile-time check.
var _ domain.DirectoryClient = (*Client)(nil)
