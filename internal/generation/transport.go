package generation

import (
	"net"
	"net/http"
	"time"
)

// TransportConfig tunes the dedicated HTTP client used for generation calls.
type TransportConfig struct {
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		ResponseHeader:      0, // a local model can take a while before the first byte
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 8,
	}
}

// newHTTPClient builds a client without an overall timeout; Client.Generate
// bounds each call with a context deadline instead.
func newHTTPClient(cfg TransportConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{Transport: tr}
}
