package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired matches any 401 response. By the time a caller sees it
// the gateway has already destroyed the session; the only recovery is a
// fresh login.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx backend response. Detail carries the backend's
// message when one was provided.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is makes errors.Is(err, ErrSessionExpired) true for every 401, regardless
// of which endpoint produced it.
func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.StatusCode == http.StatusUnauthorized
}

// ScopeError reports an impersonation target outside the actor's scope. It
// is raised locally, before any backend result is applied.
type ScopeError struct {
	ActorRole  Role
	TargetRole Role
	Reason     string
}

func (e *ScopeError) Error() string {
	return e.Reason
}
