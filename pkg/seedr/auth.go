package seedr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/go-seedr/seedr/internal/request"
)

// ErrCodeExpired is returned by WaitForToken when the device code expires
// before the user authorizes it.
var ErrCodeExpired = errors.New("device code expired")

// RequestDeviceCode starts the device flow. The user enters UserCode on the
// Seedr devices page while the caller polls with PollForToken.
func (c *Client) RequestDeviceCode() (*DeviceCode, error) {
	u := fmt.Sprintf("%s%s?client_id=%s", c.baseURL, deviceCodePath, url.QueryEscape(c.clientID))
	resp, err := c.get(u)
	if err != nil {
		return nil, fmt.Errorf("requesting device code: %w", err)
	}
	var dc DeviceCode
	if err := json.Unmarshal(resp, &dc); err != nil {
		return nil, fmt.Errorf("parsing device code response: %w", err)
	}
	return &dc, nil
}

// PollForToken performs a single authorization check. A nil token with a
// nil error means the user has not authorized the code yet (the server
// signals this with HTTP 400). Any other failure propagates.
func (c *Client) PollForToken(deviceCode string) (*AccessToken, error) {
	u := fmt.Sprintf("%s%s?device_code=%s&client_id=%s",
		c.baseURL, deviceAuthorizePath, url.QueryEscape(deviceCode), url.QueryEscape(c.clientID))
	resp, err := c.get(u)
	if err != nil {
		if request.IsStatus(err, http.StatusBadRequest) {
			// Authorization still pending
			return nil, nil
		}
		return nil, fmt.Errorf("polling for token: %w", err)
	}
	var token AccessToken
	if err := json.Unmarshal(resp, &token); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	return &token, nil
}

// WaitForToken polls until the device code is authorized, honoring the
// server-provided interval and expiry. It returns ErrCodeExpired once the
// code's lifetime runs out, or the context's error on cancellation.
func (c *Client) WaitForToken(ctx context.Context, dc *DeviceCode) (*AccessToken, error) {
	interval := time.Duration(dc.Interval) * time.Second
	if interval < time.Second {
		interval = time.Second
	}
	deadline := time.Now().Add(time.Duration(dc.ExpiresIn) * time.Second)

	for {
		token, err := c.PollForToken(dc.DeviceCode)
		if err != nil {
			return nil, err
		}
		if token != nil {
			return token, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, ErrCodeExpired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}
