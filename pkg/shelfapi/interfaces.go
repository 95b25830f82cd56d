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
	"net/http"

	"github.com/magnusoverli/VirtEditor/pkg/models"
)

//go:generate mockgen -destination=mock_shelfapi.go -package=shelfapi github.com/magnusoverli/VirtEditor/pkg/shelfapi HTTPClient,SlotFetcher,SlotDiscoverer

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SlotFetcher fetches telemetry payloads for a single slot.
type SlotFetcher interface {
	FetchSlotSections(ctx context.Context, slot models.SlotID, sections []models.Section) (*models.RawSlotPayload, error)
	FetchFocused(ctx context.Context, slot models.SlotID) (*models.RawSlotPayload, error)
	FetchFallback(ctx context.Context, slot models.SlotID) (*models.RawSlotPayload, error)
}

// SlotDiscoverer resolves the set of populated slots on the shelf.
type SlotDiscoverer interface {
	DiscoverSlots(ctx context.Context) ([]models.SlotID, error)
}
