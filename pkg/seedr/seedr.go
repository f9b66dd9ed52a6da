package seedr

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-seedr/seedr/internal/logger"
	"github.com/go-seedr/seedr/internal/request"
)

const (
	DefaultBaseURL = "https://www.seedr.cc"

	// DefaultClientID is the long-lived application identifier Seedr hands
	// out for device-flow clients.
	DefaultClientID = "seedr_xbmc"

	deviceCodePath      = "/api/device/code"
	deviceAuthorizePath = "/api/device/authorize"
	folderPath          = "/api/folder"
	resourcePath        = "/oauth_test/resource.php"
)

// Config configures a Client. The zero value targets the public Seedr API
// with the default device-flow client id and a 30s per-request timeout.
type Config struct {
	BaseURL   string
	ClientID  string
	RateLimit string // e.g. "60/minute" or "5/second"; empty disables limiting
	Proxy     string
	Timeout   time.Duration
	LogLevel  string
	LogDir    string // when set, logs also rotate into LogDir/seedr.log
}

// Client talks to the Seedr HTTP API. It holds no credential state; the
// access token is passed explicitly on every call.
type Client struct {
	baseURL  string
	clientID string
	client   *request.Client
	logger   zerolog.Logger
}

func New(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	_log := logger.New("seedr", cfg.LogLevel)
	if cfg.LogDir != "" {
		_log = logger.NewWithFile("seedr", cfg.LogLevel, cfg.LogDir)
	}
	rl := request.ParseRateLimit(cfg.RateLimit)
	client := request.New(
		request.WithTimeout(timeout),
		request.WithRateLimiter(rl),
		request.WithProxy(cfg.Proxy),
		request.WithLogger(_log),
	)
	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		client:   client,
		logger:   _log,
	}
}

// rpc posts a form-encoded call to the resource endpoint. The remote
// operation is selected by the "func" field of the form.
func (c *Client) rpc(form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+resourcePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.client.MakeRequest(req)
}

func (c *Client) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.client.MakeRequest(req)
}

// actionFailure wraps a transport error into the soft-failure envelope,
// keeping the HTTP status when one is known.
func actionFailure(err error) *ActionResult {
	result := &ActionResult{Error: err.Error()}
	var httpErr *request.HTTPError
	if errors.As(err, &httpErr) {
		result.Status = httpErr.StatusCode
	}
	return result
}
