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
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Entry is a single structured log line delivered to stream subscribers.
type Entry struct {
	Level     string
	Timestamp time.Time
	Component string
	Message   string
}

// Subscriber receives log entries. Implementations must not block; slow
// subscribers have entries dropped rather than stalling the logger.
type Subscriber func(Entry)

// StreamWriter is an io.Writer that decodes zerolog JSON lines and fans
// them out to registered subscribers. It is attached to a logger via
// Config.Stream and composed with the primary output by MultiWriter.
type StreamWriter struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]chan Entry
	done        chan struct{}
	wg          sync.WaitGroup
}

const streamBufferSize = 256

func NewStreamWriter() *StreamWriter {
	return &StreamWriter{
		subscribers: make(map[int]chan Entry),
		done:        make(chan struct{}),
	}
}

// Subscribe registers fn and returns an unsubscribe function. Delivery is
// asynchronous through a buffered channel; entries are dropped when the
// buffer is full.
func (s *StreamWriter) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++

	ch := make(chan Entry, streamBufferSize)
	s.subscribers[id] = ch
	s.mu.Unlock()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-s.done:
				return
			case e, ok := <-ch:
				if !ok {
					return
				}

				fn(e)
			}
		}
	}()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if ch, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}
}

// Write implements io.Writer for zerolog output.
func (s *StreamWriter) Write(p []byte) (int, error) {
	entry := decodeEntry(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- entry:
		default: // subscriber too slow, drop
		}
	}

	return len(p), nil
}

// Close stops delivery goroutines and waits for them to drain.
func (s *StreamWriter) Close() {
	s.mu.Lock()
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}

func decodeEntry(p []byte) Entry {
	var raw struct {
		Level     string `json:"level"`
		Time      string `json:"time"`
		Component string `json:"component"`
		Message   string `json:"message"`
	}

	entry := Entry{Timestamp: time.Now()}

	if err := json.Unmarshal(p, &raw); err != nil {
		// Not a JSON line; deliver it verbatim.
		entry.Message = string(p)
		return entry
	}

	entry.Level = raw.Level
	entry.Component = raw.Component
	entry.Message = raw.Message

	if raw.Time != "" {
		if ts, err := time.Parse(time.RFC3339, raw.Time); err == nil {
			entry.Timestamp = ts
		}
	}

	return entry
}

type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range mw.writers {
		n, err = w.Write(p)
		if err != nil {
			return n, err
		}

		if n != len(p) {
			err = io.ErrShortWrite
			return n, err
		}
	}

	return len(p), nil
}
