package passive

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const fetchTimeout = 30 * time.Second

// FetchConfig configures the HTTP side of every passive source.
type FetchConfig struct {
	// Proxy is an optional proxy URL (http, https or socks5 scheme).
	Proxy   string
	Timeout time.Duration
}

// NewClient builds the shared HTTP client. An unparseable proxy URL is
// an input error and must fail before any enumeration starts.
func NewClient(cfg FetchConfig) (*http.Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = fetchTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil || proxyURL.Scheme == "" || proxyURL.Host == "" {
			return nil, fmt.Errorf("invalid proxy URL: %q", cfg.Proxy)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}, nil
}
