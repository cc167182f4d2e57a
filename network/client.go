// Package network provides the HTTP client used by data sources to reach media servers.
package network

import (
	"net/http"
	"time"
)

// NewClient returns a client that stamps every request with userAgent.
func NewClient(userAgent string) *http.Client {
	return &http.Client{
		Timeout: time.Minute,
		Transport: &userAgentTransport{
			userAgent: userAgent,
			base:      newTransport(),
		},
	}
}

type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
