/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package shelfapi is the HTTP client for the shelf management plane. It
// owns one authenticated session per device endpoint, fetches per-slot
// telemetry sections, and discovers populated slots.
package shelfapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/magnusoverli/VirtEditor/pkg/logger"
	"github.com/magnusoverli/VirtEditor/pkg/models"
)

const (
	defaultMaxSlots       = 10
	defaultFetchTimeout   = 10 * time.Second
	defaultFocusedTimeout = 5 * time.Second

	// Connection pool must cover the fetch worker pool to avoid
	// head-of-line blocking during bulk fetches.
	transportPoolSize = 10

	loginMarker     = "login"
	expiryScanBytes = 1024

	// maxLoginBodyBytes bounds reads of login pages and probe responses.
	// Data endpoints are read in full; sections can exceed this.
	maxLoginBodyBytes = 1 << 20
)

// failurePhrases are the known login rejection markers devices embed in an
// otherwise successful response.
var failurePhrases = []string{
	"login failed",
	"invalid username",
	"invalid password",
	"authentication failed",
	"incorrect credentials",
}

// ClientConfig identifies a device endpoint and tunes fetch behavior.
type ClientConfig struct {
	Host           string          `json:"host"`
	Username       string          `json:"username"`
	Password       string          `json:"password"`
	MaxSlots       int             `json:"max_slots"`
	FetchTimeout   models.Duration `json:"fetch_timeout"`
	FocusedTimeout models.Duration `json:"focused_timeout"`
}

func (c *ClientConfig) setDefaults() {
	if c.MaxSlots == 0 {
		c.MaxSlots = defaultMaxSlots
	}

	if c.FetchTimeout == 0 {
		c.FetchTimeout = models.Duration(defaultFetchTimeout)
	}

	if c.FocusedTimeout == 0 {
		c.FocusedTimeout = models.Duration(defaultFocusedTimeout)
	}
}

// Client talks to one shelf endpoint over plain HTTP. The session state is
// guarded by mu; re-authentication is mutually exclusive so concurrent
// fetch tasks detecting expiry do not race logins.
type Client struct {
	config     ClientConfig
	httpClient HTTPClient
	logger     logger.Logger

	mu            sync.Mutex
	authenticated bool
	authGen       uint64
}

var (
	_ SlotFetcher    = (*Client)(nil)
	_ SlotDiscoverer = (*Client)(nil)
)

// New creates a client for the given endpoint with a cookie-backed HTTP
// session and a pooled transport.
func New(config *ClientConfig, log logger.Logger) (*Client, error) {
	config.setDefaults()

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Jar: jar,
		Transport: &http.Transport{
			MaxIdleConns:        transportPoolSize * 2,
			MaxIdleConnsPerHost: transportPoolSize,
		},
	}

	log.Debug().Str("host", config.Host).Msg("Created shelf API client")

	return &Client{
		config:     *config,
		httpClient: httpClient,
		logger:     log,
	}, nil
}

// NewWithHTTPClient creates a client using the provided HTTP client. Used
// by tests to substitute transports.
func NewWithHTTPClient(config *ClientConfig, httpClient HTTPClient, log logger.Logger) *Client {
	config.setDefaults()

	return &Client{
		config:     *config,
		httpClient: httpClient,
		logger:     log,
	}
}

func (c *Client) baseURL() string {
	return "http://" + c.config.Host
}

// Authenticate establishes the session using form-based login. It is a
// no-op when already authenticated and safe to call concurrently.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authenticated {
		return nil
	}

	return c.loginLocked(ctx)
}

// authGeneration snapshots the current session generation. A fetch task
// records it before a request and passes it to reauthenticate so that only
// the first task observing expiry performs the login.
func (c *Client) authGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.authGen
}

// reauthenticate invalidates and re-establishes the session, unless another
// task has already done so since observedGen was taken.
func (c *Client) reauthenticate(ctx context.Context, observedGen uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authGen != observedGen {
		// A concurrent task already re-logged in.
		return nil
	}

	c.authenticated = false

	return c.loginLocked(ctx)
}

// loginLocked drives the login flow. Callers hold mu.
func (c *Client) loginLocked(ctx context.Context) error {
	// A known protected URL; an authenticated session gets data back, an
	// expired one is redirected to the login page.
	probeURL := fmt.Sprintf("%s/slot/1/api/data.html", c.baseURL())

	c.logger.Debug().Str("url", probeURL).Msg("Fetching login page")

	status, finalURL, body, err := c.get(ctx, probeURL, time.Duration(c.config.FetchTimeout), maxLoginBodyBytes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if status != http.StatusOK {
		return fmt.Errorf("%w: %d from login probe", errUnexpectedStatusCode, status)
	}

	if !containsLoginMarker(finalURL, body, len(body)) {
		// Session already valid, e.g. reused cookies.
		c.logger.Info().Msg("No login page detected, session already authenticated")
		c.markAuthenticatedLocked()

		return nil
	}

	base, err := url.Parse(c.baseURL())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	form := parseLoginForm(body, base)
	if form == nil {
		return ErrProtocolMismatch
	}

	c.logger.Debug().
		Str("action", form.action).
		Str("username_field", form.usernameField).
		Int("hidden_fields", len(form.hidden)).
		Msg("Submitting login form")

	status, _, body, err = c.postForm(ctx, form.action, form.values(c.config.Username, c.config.Password))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if status != http.StatusOK {
		return fmt.Errorf("%w: %d from login form submission", errUnexpectedStatusCode, status)
	}

	lowered := strings.ToLower(string(body))
	for _, phrase := range failurePhrases {
		if strings.Contains(lowered, phrase) {
			return ErrInvalidCredentials
		}
	}

	c.logger.Info().Str("host", c.config.Host).Msg("Successfully authenticated with the device")
	c.markAuthenticatedLocked()

	return nil
}

func (c *Client) markAuthenticatedLocked() {
	c.authenticated = true
	c.authGen++
}

// sessionExpired detects a response redirected to or containing the login
// page. Only the leading bytes of the body are scanned.
func sessionExpired(finalURL string, status int, body []byte) bool {
	if status != http.StatusOK {
		return strings.Contains(strings.ToLower(finalURL), loginMarker)
	}

	return containsLoginMarker(finalURL, body, expiryScanBytes)
}

func containsLoginMarker(finalURL string, body []byte, scanLimit int) bool {
	if strings.Contains(strings.ToLower(finalURL), loginMarker) {
		return true
	}

	if scanLimit > len(body) {
		scanLimit = len(body)
	}

	return strings.Contains(strings.ToLower(string(body[:scanLimit])), loginMarker)
}
