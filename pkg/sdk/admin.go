package sdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// storeQuery builds the optional ?store= filter. "all" is the UI's
// unfiltered sentinel and is not sent over the wire.
func storeQuery(store string) url.Values {
	if store == "" || store == "all" {
		return nil
	}
	q := url.Values{}
	q.Set("store", store)
	return q
}

// DashboardStats fetches the admin summary, optionally scoped to one store.
func (c *Client) DashboardStats(ctx context.Context, store string) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard-stats", storeQuery(store), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RiderStatuses fetches the live status board. The returned slice is a full
// snapshot; callers replace, never merge.
func (c *Client) RiderStatuses(ctx context.Context, store string) ([]RiderStatusEntry, error) {
	var resp struct {
		Items []RiderStatusEntry `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/rider-status", storeQuery(store), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// PrimeOverview fetches the prime admin's cross-store rollup.
func (c *Client) PrimeOverview(ctx context.Context) (*PrimeOverview, error) {
	var overview PrimeOverview
	if err := c.do(ctx, http.MethodGet, "/admin/prime-overview", nil, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// ImpersonationLogs fetches the most recent impersonation audit records.
func (c *Client) ImpersonationLogs(ctx context.Context, limit int) ([]ImpersonationLog, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Items []ImpersonationLog `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/impersonation-logs", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Riders lists the rider accounts visible to the caller.
func (c *Client) Riders(ctx context.Context, store string) ([]Rider, error) {
	var resp struct {
		Items []Rider `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/riders", storeQuery(store), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddRiderInput creates a rider account. SubAdminID assigns the managing
// sub admin and is only meaningful for prime admins.
type AddRiderInput struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	Password   string `json:"password"`
	Store      string `json:"store"`
	SubAdminID int64  `json:"sub_admin_id,omitempty"`
}

// AddRider creates a rider account. Required fields are checked before any
// network call.
func (c *Client) AddRider(ctx context.Context, in AddRiderInput) error {
	if in.Username == "" || in.Name == "" || in.Password == "" || in.Store == "" {
		return errors.New("username, name, password and store are required")
	}
	return c.do(ctx, http.MethodPost, "/admin/add-rider", nil, in, nil)
}

// DeleteRider removes a rider account by username and returns the backend's
// outcome message. A missing rider is a soft outcome, not an error.
func (c *Client) DeleteRider(ctx context.Context, username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", errors.New("username is required")
	}
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodDelete, "/admin/delete-rider", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// SubAdmins lists sub admin accounts. Prime admin only.
func (c *Client) SubAdmins(ctx context.Context) ([]SubAdmin, error) {
	var resp struct {
		Items []SubAdmin `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/sub-admins", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// AddSubAdminInput creates a sub admin account.
type AddSubAdminInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AddSubAdmin creates a sub admin account. Prime admin only.
func (c *Client) AddSubAdmin(ctx context.Context, in AddSubAdminInput) error {
	if in.Username == "" || in.Name == "" || in.Password == "" {
		return errors.New("username, name and password are required")
	}
	return c.do(ctx, http.MethodPost, "/admin/add-sub-admin", nil, in, nil)
}

// DeleteSubAdmin removes a sub admin account by username and returns the
// backend's outcome message.
func (c *Client) DeleteSubAdmin(ctx context.Context, username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return "", errors.New("username is required")
	}
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodDelete, "/admin/delete-sub-admin", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
