package clients

import (
	"net"
	"net/http"
	"time"
)

// DefaultTransport returns a configured HTTP transport for the client.
// A single client process talks to one backend origin plus at most a
// couple of OAuth hosts, so the connection caps are modest; the dial and
// TLS timeouts keep a dead backend from hanging callers for minutes.
func DefaultTransport() *http.Transport {
	return &http.Transport{
		MaxConnsPerHost:     16,
		MaxIdleConnsPerHost: 4,
		MaxIdleConns:        16,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
