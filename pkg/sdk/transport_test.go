package sdk

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient logs a rider or admin into a fresh client wired to the mock
// backend, with a near-zero retry wait so retry tests run fast.
func newTestClient(t *testing.T, backend *MockBackend, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithRetryWait(time.Millisecond)}, opts...)
	return NewClient(backend.URL, NewSessionManager(&memStore{}), opts...)
}

func login(t *testing.T, c *Client, username, password string) *Principal {
	t.Helper()
	p, err := c.Login(context.Background(), username, password)
	require.NoError(t, err)
	return p
}

func seedAdminBackend(t *testing.T) *MockBackend {
	t.Helper()
	backend := NewMockBackend()
	t.Cleanup(backend.Close)
	backend.AddAccount("boss", "boss-pw", Principal{Name: "Boss", Role: RolePrimeAdmin})
	return backend
}

func TestGatewayRetriesReadOnceOn5xx(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")

	backend.FailNext("/admin/dashboard-stats", 1)
	_, err := c.DashboardStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, backend.RequestCount("/admin/dashboard-stats"))
}

func TestGatewayRetriesReadExactlyOnce(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")

	// Two consecutive failures exhaust the single retry.
	backend.FailNext("/admin/dashboard-stats", 2)
	_, err := c.DashboardStats(context.Background(), "")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, 2, backend.RequestCount("/admin/dashboard-stats"))
}

func TestGatewayNeverRetriesWrites(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")

	backend.FailNext("/admin/add-rider", 1)
	err := c.AddRider(context.Background(), AddRiderInput{
		Username: "asha", Name: "Asha", Password: "pw", Store: "north",
	})
	require.Error(t, err)
	assert.Equal(t, 1, backend.RequestCount("/admin/add-rider"))
}

func TestGatewayDoesNotRetryClientErrors(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")

	// 404: no handler behind this path, the mux answers directly.
	err := c.do(context.Background(), http.MethodGet, "/admin/unknown", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, backend.RequestCount("/admin/unknown"))
}

type flakyTransport struct {
	failures int
	base     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection reset by peer")
	}
	return f.base.RoundTrip(req)
}

func TestGatewayRetriesReadOnTransportError(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend, WithHTTPClient(&http.Client{
		Transport: &flakyTransport{failures: 1, base: http.DefaultTransport},
	}))
	login(t, c, "boss", "boss-pw")

	_, err := c.DashboardStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.RequestCount("/admin/dashboard-stats"))
}

func TestGatewayExpiresSessionOnAnyUnauthorized(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend)
	login(t, c, "boss", "boss-pw")
	require.True(t, c.Session().IsAuthenticated())

	forced := 0
	c.Session().OnSessionInvalidated(func() { forced++ })

	backend.RevokeTokens()

	_, err := c.DashboardStats(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, c.Session().IsAuthenticated())
	assert.Equal(t, 1, forced)
}

func TestGatewayRetryRespectsContextCancel(t *testing.T) {
	backend := seedAdminBackend(t)
	c := newTestClient(t, backend, WithRetryWait(time.Minute))
	login(t, c, "boss", "boss-pw")

	backend.FailNext("/admin/dashboard-stats", 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.DashboardStats(ctx, "")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// recordingTransport remembers the headers of the last request the gateway
// handed to the wire.
type recordingTransport struct {
	base      http.RoundTripper
	auth      string
	requestID string
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.auth = req.Header.Get("Authorization")
	r.requestID = req.Header.Get("X-Request-ID")
	return r.base.RoundTrip(req)
}

func TestGatewaySendsBearerAndRequestID(t *testing.T) {
	backend := seedAdminBackend(t)
	recorder := &recordingTransport{base: http.DefaultTransport}
	c := newTestClient(t, backend, WithHTTPClient(&http.Client{Transport: recorder}))
	login(t, c, "boss", "boss-pw")

	// The login itself carries no token but does carry a request id.
	assert.Empty(t, recorder.auth)
	assert.NotEmpty(t, recorder.requestID)

	_, err := c.DashboardStats(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, len(recorder.auth) > len("Bearer "))
	assert.NotEmpty(t, recorder.requestID)
}
