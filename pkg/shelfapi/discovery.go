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
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/magnusoverli/VirtEditor/pkg/models"
)

// DiscoverSlots resolves the set of populated slots, ascending and without
// duplicates. The aggregate shelf endpoint is tried first; on failure or an
// unrecognized shape it falls back to probing slots individually. A
// reachable device never yields an empty result: when nothing responds the
// device is assumed to have at least slot 1.
func (c *Client) DiscoverSlots(ctx context.Context) ([]models.SlotID, error) {
	if err := c.Authenticate(ctx); err != nil {
		return nil, err
	}

	slots, err := c.discoverAggregate(ctx)
	if err == nil {
		c.logger.Info().Interface("slots", slots).Msg("Detected slots via shelf aggregate endpoint")

		return slots, nil
	}

	if errors.Is(err, ErrAuthenticationFailed) {
		return nil, err
	}

	c.logger.Warn().Err(err).Msg("Aggregate slot discovery failed, probing slots individually")

	return c.probeSlots(ctx), nil
}

// discoverAggregate reads data.shelf.slots.detected_coll from the shelf
// aggregate endpoint; its keys are the detected slot numbers.
func (c *Client) discoverAggregate(ctx context.Context) ([]models.SlotID, error) {
	aggregateURL := c.baseURL() + "/api/data/shelf/slots/detected_coll"

	raw, err := c.getJSON(ctx, aggregateURL, time.Duration(c.config.FetchTimeout))
	if err != nil {
		return nil, err
	}

	var shelf struct {
		Data struct {
			Shelf struct {
				Slots struct {
					DetectedColl map[string]json.RawMessage `json:"detected_coll"`
				} `json:"slots"`
			} `json:"shelf"`
		} `json:"data"`
	}

	if err := json.Unmarshal(raw, &shelf); err != nil {
		return nil, fmt.Errorf("%w: %w", errAggregateShape, err)
	}

	detected := shelf.Data.Shelf.Slots.DetectedColl
	if len(detected) == 0 {
		return nil, errAggregateShape
	}

	slots := make([]models.SlotID, 0, len(detected))

	for key := range detected {
		n, err := strconv.Atoi(key)
		if err != nil {
			c.logger.Debug().Str("key", key).Msg("Skipping non-numeric slot key")
			continue
		}

		slots = append(slots, models.SlotID(n))
	}

	if len(slots) == 0 {
		return nil, errAggregateShape
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	return slots, nil
}

// probeSlots checks slot numbers 1..MaxSlots one by one. 200 means the slot
// exists, 404 means absent; any other status or error is treated as absent
// without aborting the scan.
func (c *Client) probeSlots(ctx context.Context) []models.SlotID {
	var slots []models.SlotID

	for n := 1; n <= c.config.MaxSlots; n++ {
		probeURL := fmt.Sprintf("%s/slot/%d/api/data/dev.json", c.baseURL(), n)

		status, _, _, err := c.get(ctx, probeURL, time.Duration(c.config.FocusedTimeout), maxLoginBodyBytes)
		if err != nil {
			c.logger.Debug().Int("slot", n).Err(err).Msg("Slot probe failed")
			continue
		}

		if status == http.StatusOK {
			slots = append(slots, models.SlotID(n))
		}
	}

	if len(slots) == 0 {
		c.logger.Warn().Msg("No slots detected by probing, defaulting to slot 1")

		return []models.SlotID{1}
	}

	c.logger.Info().Interface("slots", slots).Msg("Detected slots by probing")

	return slots
}
