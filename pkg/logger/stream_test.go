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

package logger

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamWriterDeliversEntries(t *testing.T) {
	stream := NewStreamWriter()
	defer stream.Close()

	var mu sync.Mutex

	var got []Entry

	done := make(chan struct{})

	unsubscribe := stream.Subscribe(func(e Entry) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()

		select {
		case done <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	zlog := zerolog.New(stream).With().
		Timestamp().
		Str("component", "session").
		Logger()

	zlog.Warn().Msg("session expired")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive entry")
	}

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, got, 1)
	assert.Equal(t, "warn", got[0].Level)
	assert.Equal(t, "session", got[0].Component)
	assert.Equal(t, "session expired", got[0].Message)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestStreamWriterNonJSONLine(t *testing.T) {
	entry := decodeEntry([]byte("plain text line"))

	assert.Empty(t, entry.Level)
	assert.Equal(t, "plain text line", entry.Message)
}

func TestStreamWriterUnsubscribe(t *testing.T) {
	stream := NewStreamWriter()
	defer stream.Close()

	var count int

	var mu sync.Mutex

	unsubscribe := stream.Subscribe(func(Entry) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	unsubscribe()

	_, err := stream.Write([]byte(`{"level":"info","message":"after"}`))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, count)
}

func TestMultiWriterFansOut(t *testing.T) {
	stream := NewStreamWriter()
	defer stream.Close()

	var buf testBuffer

	mw := NewMultiWriter(&buf, stream)

	n, err := mw.Write([]byte(`{"level":"info","message":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.Equal(t, `{"level":"info","message":"x"}`, buf.String())
}

type testBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *testBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf = append(b.buf, p...)

	return len(p), nil
}

func (b *testBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return string(b.buf)
}
