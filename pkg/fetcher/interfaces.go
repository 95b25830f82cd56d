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

package fetcher

//go:generate mockgen -destination=mock_fetcher.go -package=fetcher -source=interfaces.go EventSink

import (
	"github.com/magnusoverli/VirtEditor/pkg/models"
	"github.com/magnusoverli/VirtEditor/pkg/shelfapi"
)

// EventSink receives orchestrator events. Implementations must be safe for
// concurrent use; callbacks are invoked from the orchestrator's control
// goroutine and must not block.
type EventSink interface {
	// OnProgress reports completed/total task counts. Rate-limited except
	// for the final completion, which always fires.
	OnProgress(completed, total int)

	// OnSlotResult delivers one slot's outcome as it completes. No
	// ordering guarantee across slots.
	OnSlotResult(slot models.SlotID, outcome models.FetchOutcome)

	// OnComplete delivers the aggregate result. Never called for a
	// cancelled run.
	OnComplete(result models.BatchResult)

	// OnError reports a run-level orchestration failure.
	OnError(kind shelfapi.ErrorKind, message string)
}

// NoopSink discards all events. Useful as a default.
type NoopSink struct{}

var _ EventSink = (*NoopSink)(nil)

func (NoopSink) OnProgress(_, _ int)                                 {}
func (NoopSink) OnSlotResult(_ models.SlotID, _ models.FetchOutcome) {}
func (NoopSink) OnComplete(_ models.BatchResult)                     {}
func (NoopSink) OnError(_ shelfapi.ErrorKind, _ string)              {}
