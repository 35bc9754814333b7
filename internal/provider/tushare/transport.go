package tushare

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// baseTransportConfig returns the HTTP transport shared by Tushare clients.
// The fallback path issues thousands of small sequential calls, so keep-alives stay on.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: time.Minute,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   4,
	}
}

// newRestyClient creates a resty client configured for Tushare requests.
func newRestyClient(cfg Config) *resty.Client {
	hc := &http.Client{
		Transport: baseTransportConfig(),
		Timeout:   cfg.Timeout,
	}
	return resty.NewWithClient(hc).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}
