package app

import (
	"net"
	"net/http"
	"time"
)

// newFanoutHTTPClient returns the HTTP client shared by all engine
// adapters. Every query fans out to several hosts at once, so the pool is
// sized for parallelism rather than client-side throttling; timeouts stay
// tight enough that a dead upstream cannot hold connections open.
func newFanoutHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          0,
		MaxIdleConnsPerHost:   64,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   30 * time.Second,
	}
}
