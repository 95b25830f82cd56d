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

package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchStatusFor(t *testing.T) {
	tests := []struct {
		name      string
		succeeded int
		failed    int
		want      BatchStatus
	}{
		{name: "all succeeded", succeeded: 4, failed: 0, want: BatchAllSucceeded},
		{name: "partial", succeeded: 3, failed: 5, want: BatchPartialSuccess},
		{name: "none succeeded", succeeded: 0, failed: 2, want: BatchNoneSucceeded},
		{name: "empty batch", succeeded: 0, failed: 0, want: BatchAllSucceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BatchStatusFor(tt.succeeded, tt.failed))
		})
	}
}

func TestFetchOutcomeSuccess(t *testing.T) {
	payload := NewRawSlotPayload()
	payload.Set(SectionDev, json.RawMessage(`{}`))

	assert.True(t, FetchOutcome{Slot: 1, Payload: payload}.Success())
	assert.False(t, FetchOutcome{Slot: 1, Err: errors.New("boom")}.Success())
	assert.False(t, FetchOutcome{Slot: 1}.Success())
}

func TestRawSlotPayload(t *testing.T) {
	payload := NewRawSlotPayload()

	assert.True(t, payload.IsEmpty())
	assert.Zero(t, payload.SectionCount())

	payload.Set(SectionDev, json.RawMessage(`{"a": 1}`))
	payload.Set(SectionAlarms, json.RawMessage(`{}`))

	assert.False(t, payload.IsEmpty())
	assert.Equal(t, 2, payload.SectionCount())
	assert.JSONEq(t, `{"a": 1}`, string(payload.Section(SectionDev)))
	assert.Nil(t, payload.Section(SectionStore))
}

func TestSectionIsOptional(t *testing.T) {
	for _, section := range RequiredSections() {
		assert.False(t, section.IsOptional(), string(section))
	}

	for _, section := range OptionalSections() {
		assert.True(t, section.IsOptional(), string(section))
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"5s"`), &d))
	assert.Equal(t, Duration(5*time.Second), d)

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, Duration(time.Second), d)

	require.Error(t, json.Unmarshal([]byte(`"not a duration"`), &d))
}

func TestDurationMarshal(t *testing.T) {
	data, err := json.Marshal(Duration(250 * time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, `"250ms"`, string(data))
}
