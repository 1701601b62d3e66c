// Package network holds the HTTP client used for release checks.
package network

import (
	"net/http"
	"time"

	"github.com/reelplay/reelplay/constant"
)

// Client is shared by everything that talks to the network.
var Client = &http.Client{
	Timeout:   5 * time.Second,
	Transport: &userAgent{base: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}

type userAgent struct {
	base http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.App+"/"+constant.Version)
	return u.base.RoundTrip(req)
}
