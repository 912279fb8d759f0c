// Package http holds HTTP plumbing shared by the server and the API client.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client for calling the notes API.
//
// http.DefaultClient has no timeout, so callers always get a client with:
//   - Proxy settings from the environment (HTTP_PROXY and friends)
//   - a 5s TCP dial timeout and 30s keep-alive
//   - up to 100 idle connections kept for 90s
//   - a 5s TLS handshake limit
//   - timeout as the limit for the whole request
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
