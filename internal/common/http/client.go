// internal/common/http/client.go

// Package http wraps the outbound client used for third-party API calls.
// Every request carries a hard deadline so a slow provider degrades the
// caller instead of stalling pitch creation.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	httpClient *http.Client
}

// NewClient builds a client with a per-request deadline. Idle connections
// are kept warm for repeat lookups against the same provider host.
func NewClient(timeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 8
	transport.IdleConnTimeout = 60 * time.Second
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// IsTimeout reports whether err came from a missed deadline, either the
// request context or the client's own timeout. Callers map these to their
// domain timeout errors.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// the client-side deadline surfaces as a plain string on some paths
	return strings.Contains(err.Error(), "Client.Timeout")
}
