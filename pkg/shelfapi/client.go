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

package shelfapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/magnusoverli/VirtEditor/pkg/models"
)

// FetchSlotSections fetches the given sections for one slot. Section-level
// failures degrade the payload rather than aborting the call; only a
// re-authentication failure is fatal for the slot. A payload with zero
// sections falls back to the combined endpoint.
func (c *Client) FetchSlotSections(ctx context.Context, slot models.SlotID, sections []models.Section) (*models.RawSlotPayload, error) {
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("slot", int(slot)).Msg("Fetching slot sections")

	payload := c.fetchSections(ctx, slot, sections, time.Duration(c.config.FetchTimeout))
	if payload == nil {
		return nil, fmt.Errorf("%w: slot %d", ErrAuthenticationFailed, slot)
	}

	if payload.IsEmpty() {
		c.logger.Warn().Int("slot", int(slot)).Msg("No data sections fetched, trying combined endpoint")

		return c.FetchFallback(ctx, slot)
	}

	c.logger.Info().
		Int("slot", int(slot)).
		Int("sections", payload.SectionCount()).
		Msg("Fetched slot data sections")

	return payload, nil
}

// FetchFocused fetches only the essential sections with a shorter timeout.
// Used for bulk multi-slot operations to bound total latency.
func (c *Client) FetchFocused(ctx context.Context, slot models.SlotID) (*models.RawSlotPayload, error) {
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	payload := c.fetchSections(ctx, slot, models.FocusedSections(), time.Duration(c.config.FocusedTimeout))
	if payload == nil {
		return nil, fmt.Errorf("%w: slot %d", ErrAuthenticationFailed, slot)
	}

	if payload.IsEmpty() {
		return nil, fmt.Errorf("%w: slot %d", ErrNoSections, slot)
	}

	return payload, nil
}

// fetchSections requests each section independently, tolerating failures
// per the section's required/optional class. A nil return means
// re-authentication failed mid-fetch.
func (c *Client) fetchSections(ctx context.Context, slot models.SlotID, sections []models.Section, timeout time.Duration) *models.RawSlotPayload {
	payload := models.NewRawSlotPayload()

	for _, section := range sections {
		sectionURL := fmt.Sprintf("%s/slot/%d/api/data/%s.json", c.baseURL(), slot, section)

		raw, err := c.getJSON(ctx, sectionURL, timeout)
		if err != nil {
			if errors.Is(err, ErrAuthenticationFailed) {
				return nil
			}

			if section.IsOptional() {
				c.logger.Debug().
					Int("slot", int(slot)).
					Str("section", string(section)).
					Err(err).
					Msg("Optional section not available")
			} else {
				c.logger.Warn().
					Int("slot", int(slot)).
					Str("section", string(section)).
					Err(err).
					Msg("Failed to fetch section")
			}

			continue
		}

		payload.Set(section, raw)
	}

	return payload
}

// FetchFallback hits the combined data endpoint, used when the per-section
// endpoints yielded nothing.
func (c *Client) FetchFallback(ctx context.Context, slot models.SlotID) (*models.RawSlotPayload, error) {
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	fallbackURL := fmt.Sprintf("%s/slot/%d/api/data.json", c.baseURL(), slot)

	c.logger.Debug().Str("url", fallbackURL).Msg("Trying fallback combined endpoint")

	raw, err := c.getJSON(ctx, fallbackURL, time.Duration(c.config.FetchTimeout))
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data map[models.Section]json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("%w: slot %d", ErrNoSections, slot)
	}

	return &models.RawSlotPayload{Data: envelope.Data}, nil
}

// getJSON performs an authenticated GET and extracts a JSON document from
// the response. A login-page response triggers exactly one transparent
// re-authentication and retry; a second login page is terminal.
func (c *Client) getJSON(ctx context.Context, rawURL string, timeout time.Duration) (json.RawMessage, error) {
	observedGen := c.authGeneration()

	status, finalURL, body, err := c.get(ctx, rawURL, timeout, 0)
	if err != nil {
		return nil, err
	}

	if sessionExpired(finalURL, status, body) {
		c.logger.Warn().Str("url", rawURL).Msg("Session expired, attempting to re-authenticate")

		if err := c.reauthenticate(ctx, observedGen); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}

		status, finalURL, body, err = c.get(ctx, rawURL, timeout, 0)
		if err != nil {
			return nil, err
		}

		if sessionExpired(finalURL, status, body) {
			return nil, errLoginPage
		}
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrSectionUnavailable, status)
	}

	return extractJSON(body)
}

// extractJSON parses a body that should be JSON but may be decorated: a
// pretty-print banner before the document, or markup around it. Strips the
// banner, else takes the span from the first '{' to the last '}'.
func extractJSON(body []byte) (json.RawMessage, error) {
	content := strings.TrimSpace(string(body))

	if strings.HasPrefix(content, "Pretty-print") {
		if idx := strings.Index(content, "{"); idx >= 0 {
			content = content[idx:]
		}
	}

	if json.Valid([]byte(content)) {
		return json.RawMessage(content), nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	if start >= 0 && end > start {
		candidate := content[start : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, ErrMalformedResponse
}

// get issues a GET with a bounded timeout, returning the status, the final
// URL after redirects, and the body. A positive limit caps how much of the
// body is read; data endpoints pass 0 to read in full.
func (c *Client) get(ctx context.Context, rawURL string, timeout time.Duration, limit int64) (status int, finalURL string, body []byte, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, "", nil, err
	}

	return c.do(req, limit)
}

// postForm submits an urlencoded form, following redirects.
func (c *Client) postForm(ctx context.Context, rawURL string, data url.Values) (status int, finalURL string, body []byte, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.FetchTimeout))
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, rawURL, strings.NewReader(data.Encode()))
	if err != nil {
		return 0, "", nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, maxLoginBodyBytes)
}

func (c *Client) do(req *http.Request, limit int64) (status int, finalURL string, body []byte, err error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if limit > 0 {
		reader = io.LimitReader(resp.Body, limit)
	}

	body, err = io.ReadAll(reader)
	if err != nil {
		return 0, "", nil, err
	}

	finalURL = req.URL.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return resp.StatusCode, finalURL, body, nil
}
