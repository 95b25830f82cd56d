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

// Package core is the caller-facing facade: it owns one device client and
// one fetch orchestrator per endpoint, and translates between raw payloads
// and canonical views.
package core

import (
	"context"

	"github.com/magnusoverli/VirtEditor/pkg/deviceview"
	"github.com/magnusoverli/VirtEditor/pkg/fetcher"
	"github.com/magnusoverli/VirtEditor/pkg/logger"
	"github.com/magnusoverli/VirtEditor/pkg/models"
	"github.com/magnusoverli/VirtEditor/pkg/shelfapi"
)

// Manager ties the session client, slot discovery and the fetch
// orchestrator together behind one surface.
type Manager struct {
	config *Config
	client DeviceClient
	orch   *fetcher.Orchestrator
	events Events
	logger logger.Logger
}

// NewManager builds a manager with a real device client. A nil events sink
// is replaced with NoopEvents.
func NewManager(config *Config, events Events, log logger.Logger) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := shelfapi.New(&config.Device, log)
	if err != nil {
		return nil, err
	}

	return NewManagerWithClient(config, client, events, log), nil
}

// NewManagerWithClient builds a manager around an existing client. Used by
// tests to substitute the device.
func NewManagerWithClient(config *Config, client DeviceClient, events Events, log logger.Logger) *Manager {
	if events == nil {
		events = NoopEvents{}
	}

	return &Manager{
		config: config,
		client: client,
		orch:   fetcher.New(client, events, log),
		events: events,
		logger: log,
	}
}

// Connect establishes the authenticated session. Failures are classified
// and reported through the events sink as well as returned.
func (m *Manager) Connect(ctx context.Context) error {
	m.logger.Info().Str("host", m.config.Device.Host).Msg("Connecting to device")

	if err := m.client.Authenticate(ctx); err != nil {
		kind, msg := shelfapi.Classify(err)
		m.events.OnError(kind, msg)

		return err
	}

	return nil
}

// DiscoverSlots resolves the populated slot list and announces it.
func (m *Manager) DiscoverSlots(ctx context.Context) ([]models.SlotID, error) {
	slots, err := m.client.DiscoverSlots(ctx)
	if err != nil {
		kind, msg := shelfapi.Classify(err)
		m.events.OnError(kind, msg)

		return nil, err
	}

	m.events.OnSlotsDiscovered(slots)

	return slots, nil
}

// FetchOne fetches every section for a single slot and normalizes the
// result into the canonical view.
func (m *Manager) FetchOne(ctx context.Context, slot models.SlotID) (models.DeviceView, error) {
	payload, err := m.client.FetchSlotSections(ctx, slot, models.AllSections())
	if err != nil {
		return models.EmptyDeviceView(slot), err
	}

	return deviceview.Normalize(payload, slot, m.logger), nil
}

// FetchAll starts a concurrent fetch of the given slots. Results and
// progress arrive through the events sink; FetchAll itself returns once
// the run is accepted.
func (m *Manager) FetchAll(ctx context.Context, slots []models.SlotID) error {
	return m.orch.Start(ctx, slots)
}

// Cancel stops an in-flight FetchAll run and waits for it to quiesce.
func (m *Manager) Cancel() {
	m.orch.Stop()
}

// Wait blocks until the active FetchAll run finishes.
func (m *Manager) Wait() {
	m.orch.Wait()
}

// View normalizes a raw fetch outcome into the canonical per-slot view.
func (m *Manager) View(outcome models.FetchOutcome) models.DeviceView {
	return deviceview.Normalize(outcome.Payload, outcome.Slot, m.logger)
}
