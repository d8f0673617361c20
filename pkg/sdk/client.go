// Package sdk is the client for the rider-operations backend: session
// lifecycle, the authenticated request gateway, the authorization guard,
// impersonation scope rules, and typed endpoint bindings.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client talks to the rider-operations backend. Every call goes through the
// authenticated gateway; the session manager is the single source of truth
// for the active identity.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionManager
	log     zerolog.Logger
}

// ClientOptions configures client construction.
type ClientOptions struct {
	HTTPClient *http.Client
	Logger     *zerolog.Logger
	RetryWait  time.Duration
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client whose transport and timeout the
// gateway wraps.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = &logger
	}
}

// WithRetryWait overrides the fixed backoff before the single read retry.
// Tests use this to avoid real one-second sleeps.
func WithRetryWait(wait time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.RetryWait = wait
	}
}

// NewClient creates a client bound to the backend at baseURL. The session
// manager may hold a rehydrated session or start logged out.
func NewClient(baseURL string, session *SessionManager, optFns ...ClientOption) *Client {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	retryWait := opts.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}

	base := http.RoundTripper(http.DefaultTransport)
	timeout := defaultTimeout
	if opts.HTTPClient != nil {
		if opts.HTTPClient.Transport != nil {
			base = opts.HTTPClient.Transport
		}
		if opts.HTTPClient.Timeout > 0 {
			timeout = opts.HTTPClient.Timeout
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		log:     logger,
		http: &http.Client{
			Timeout: timeout,
			Transport: &gateway{
				base:      base,
				session:   session,
				retryWait: retryWait,
				log:       logger,
			},
		},
	}
}

// Session returns the session manager the client was built with.
func (c *Client) Session() *SessionManager {
	return c.session
}

// Login authenticates and atomically installs the new session. On any
// failure the prior session state is decided by the gateway contract: bad
// credentials come back as 401, which destroys whatever session existed.
func (c *Client) Login(ctx context.Context, username, password string) (*Principal, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	var resp struct {
		Token string    `json:"token"`
		User  Principal `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, loginFallback(err)
	}
	if err := c.session.Replace(resp.Token, resp.User); err != nil {
		return nil, err
	}
	c.log.Info().Str("role", string(resp.User.Role)).Msg("logged in")
	user := resp.User
	return &user, nil
}

// Logout destroys the session unconditionally. It never fails.
func (c *Client) Logout() {
	c.session.Invalidate()
	c.log.Info().Msg("logged out")
}

// Impersonate authenticates as the target account and replaces the session
// when the scope rules allow it. The rules are checked locally against the
// returned principal even when the backend reported success; on a violation
// the prior session stays intact and the error names the failed rule.
func (c *Client) Impersonate(ctx context.Context, username, password string) (*Principal, error) {
	actor := c.session.Principal()
	if actor == nil {
		return nil, &ScopeError{Reason: "impersonation requires a logged in prime or sub admin"}
	}
	if actor.Role != RolePrimeAdmin && actor.Role != RoleSubAdmin {
		return nil, &ScopeError{ActorRole: actor.Role, Reason: "only prime or sub admins may impersonate"}
	}
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	var resp struct {
		Token string    `json:"token"`
		User  Principal `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/impersonate", nil, body, &resp); err != nil {
		return nil, loginFallback(err)
	}
	if err := CanImpersonate(actor, &resp.User); err != nil {
		return nil, err
	}
	if err := c.session.Replace(resp.Token, resp.User); err != nil {
		return nil, err
	}
	c.log.Info().
		Int64("actor_id", actor.ID).
		Str("target_role", string(resp.User.Role)).
		Msg("impersonation session installed")
	user := resp.User
	return &user, nil
}

// do issues one request through the gateway and decodes the JSON response
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// decodeAPIError extracts the backend's {"detail": ...} message when present.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Detail = payload.Detail
		}
	}
	return apiErr
}

// loginFallback substitutes the generic message when an authentication
// endpoint failed without a backend-provided detail.
func loginFallback(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail == "" {
		apiErr.Detail = "Login failed"
	}
	return err
}
