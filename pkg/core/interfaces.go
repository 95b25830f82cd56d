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

package core

import (
	"context"

	"github.com/magnusoverli/VirtEditor/pkg/fetcher"
	"github.com/magnusoverli/VirtEditor/pkg/models"
	"github.com/magnusoverli/VirtEditor/pkg/shelfapi"
)

// DeviceClient is the device-facing surface the manager drives.
type DeviceClient interface {
	Authenticate(ctx context.Context) error
	shelfapi.SlotFetcher
	shelfapi.SlotDiscoverer
}

// Events extends the orchestrator sink with manager-level notifications.
type Events interface {
	fetcher.EventSink

	// OnSlotsDiscovered reports the resolved slot list after discovery.
	OnSlotsDiscovered(slots []models.SlotID)
}

// NoopEvents discards all events.
type NoopEvents struct {
	fetcher.NoopSink
}

var _ Events = (*NoopEvents)(nil)

func (NoopEvents) OnSlotsDiscovered(_ []models.SlotID) {}
