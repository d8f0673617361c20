package sdk

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultRetryWait = time.Second

// gateway wraps every outbound call: it attaches the bearer token when one
// is present, retries reads once on transient failure, and destroys the
// session on any 401.
type gateway struct {
	base      http.RoundTripper
	session   *SessionManager
	retryWait time.Duration
	log       zerolog.Logger
}

func (g *gateway) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := g.attempt(req)
	if g.shouldRetry(req, resp, err) {
		if resp != nil {
			_ = resp.Body.Close()
		}
		g.log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("transient failure, retrying once")
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(g.retryWait):
		}
		resp, err = g.attempt(req)
	}
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// Unconditional: any endpoint answering 401 ends the session.
		g.session.expire()
	}
	return resp, nil
}

func (g *gateway) attempt(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if token := g.session.Token(); token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	r.Header.Set("X-Request-ID", uuid.NewString())
	return g.base.RoundTrip(r)
}

// Mutating requests are never replayed. Reads retry at most once, and only
// for a 5xx or a transport-level failure.
func (g *gateway) shouldRetry(req *http.Request, resp *http.Response, err error) bool {
	if req.Method != http.MethodGet {
		return false
	}
	if req.Context().Err() != nil {
		return false
	}
	if err != nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError
}
