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

// Package models holds the shared data model for slot telemetry.
package models

import (
	"encoding/json"
	"time"
)

// SlotID identifies a physical module bay on the shelf. Valid IDs are
// positive and discovered at runtime, never configured.
type SlotID int

// Section is a named category of per-slot telemetry fetched as a separate
// JSON resource.
type Section string

const (
	SectionDev      Section = "dev"
	SectionStore    Section = "store"
	SectionAlarms   Section = "alarms"
	SectionShelf    Section = "shelf"
	SectionElements Section = "elements"
	SectionNetwork  Section = "network"
)

// RequiredSections are fetched for a full slot read; their failures are
// logged but do not abort the slot.
func RequiredSections() []Section {
	return []Section{SectionDev, SectionStore, SectionAlarms}
}

// OptionalSections may be absent on some module types; failures are
// silently tolerated.
func OptionalSections() []Section {
	return []Section{SectionShelf, SectionElements, SectionNetwork}
}

// AllSections returns required followed by optional sections.
func AllSections() []Section {
	return append(RequiredSections(), OptionalSections()...)
}

// FocusedSections is the reduced set used for bulk multi-slot fetches.
func FocusedSections() []Section {
	return []Section{SectionDev, SectionAlarms}
}

// IsOptional reports whether a failed fetch of s may be skipped silently.
func (s Section) IsOptional() bool {
	switch s {
	case SectionShelf, SectionElements, SectionNetwork:
		return true
	case SectionDev, SectionStore, SectionAlarms:
		return false
	}

	return false
}

// RawSlotPayload is the per-slot union of fetched sections, shaped as the
// device's combined endpoint would return it: {"data": {section: value}}.
// It is built incrementally as sections arrive.
type RawSlotPayload struct {
	Data map[Section]json.RawMessage `json:"data"`
}

func NewRawSlotPayload() *RawSlotPayload {
	return &RawSlotPayload{Data: make(map[Section]json.RawMessage)}
}

// Set records one section's parsed JSON value.
func (p *RawSlotPayload) Set(section Section, raw json.RawMessage) {
	if p.Data == nil {
		p.Data = make(map[Section]json.RawMessage)
	}

	p.Data[section] = raw
}

// Section returns the raw value for a section, or nil.
func (p *RawSlotPayload) Section(section Section) json.RawMessage {
	if p == nil {
		return nil
	}

	return p.Data[section]
}

func (p *RawSlotPayload) SectionCount() int {
	if p == nil {
		return 0
	}

	return len(p.Data)
}

// IsEmpty reports whether no section was fetched; an empty payload is a
// total failure for the slot.
func (p *RawSlotPayload) IsEmpty() bool {
	return p.SectionCount() == 0
}

// FetchOutcome is the tagged per-slot result of a fetch: a payload on
// success, an error on failure. Exactly one of Payload/Err is set.
type FetchOutcome struct {
	Slot    SlotID
	Payload *RawSlotPayload
	Err     error
}

func (o FetchOutcome) Success() bool {
	return o.Err == nil && o.Payload != nil
}

// BatchStatus classifies an entire multi-slot fetch run.
type BatchStatus int

const (
	BatchAllSucceeded BatchStatus = iota
	BatchPartialSuccess
	BatchNoneSucceeded
	BatchCancelled
)

func (s BatchStatus) String() string {
	switch s {
	case BatchAllSucceeded:
		return "all_succeeded"
	case BatchPartialSuccess:
		return "partial_success"
	case BatchNoneSucceeded:
		return "none_succeeded"
	case BatchCancelled:
		return "cancelled"
	}

	return "unknown"
}

// BatchResult is the aggregate outcome of one orchestrator run.
type BatchResult struct {
	Outcomes map[SlotID]FetchOutcome
	Status   BatchStatus
	Elapsed  time.Duration
}

// BatchStatusFor derives the aggregate classification from per-slot counts.
func BatchStatusFor(succeeded, failed int) BatchStatus {
	switch {
	case failed == 0:
		return BatchAllSucceeded
	case succeeded == 0:
		return BatchNoneSucceeded
	default:
		return BatchPartialSuccess
	}
}
