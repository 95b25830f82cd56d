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
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnusoverli/VirtEditor/pkg/models"
)

// pathHandler serves static bodies by path and 404s everything else. The
// login probe path always gets a non-login body so an authenticated session
// is recognized as valid.
func pathHandler(bodies map[string]string) http.HandlerFunc {
	if _, ok := bodies["/slot/1/api/data.html"]; !ok {
		bodies["/slot/1/api/data.html"] = "<html>device status</html>"
	}

	var mu sync.Mutex

	requested := make([]string, 0, len(bodies))

	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()

		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write([]byte(body))
	}
}

func TestFetchSlotSections_AllSections(t *testing.T) {
	shelf := &fakeShelf{
		loggedIn: true,
		data: pathHandler(map[string]string{
			"/slot/4/api/data/dev.json":    `{"name": "HD-XC"}`,
			"/slot/4/api/data/store.json":  `{"mem_usage": {}}`,
			"/slot/4/api/data/alarms.json": `{"status": {}}`,
		}),
	}
	client := newTestClient(t, shelf)

	payload, err := client.FetchSlotSections(context.Background(), 4, models.RequiredSections())
	require.NoError(t, err)

	assert.Equal(t, 3, payload.SectionCount())
	assert.JSONEq(t, `{"name": "HD-XC"}`, string(payload.Section(models.SectionDev)))
}

func TestFetchSlotSections_MissingSectionTolerated(t *testing.T) {
	shelf := &fakeShelf{
		loggedIn: true,
		data: pathHandler(map[string]string{
			"/slot/4/api/data/dev.json":    `{"name": "HD-XC"}`,
			"/slot/4/api/data/alarms.json": `{"status": {}}`,
		}),
	}
	client := newTestClient(t, shelf)

	payload, err := client.FetchSlotSections(context.Background(), 4, models.RequiredSections())
	require.NoError(t, err)

	assert.Equal(t, 2, payload.SectionCount())
	assert.Nil(t, payload.Section(models.SectionStore))
}

func TestFetchSlotSections_PrettyPrintBanner(t *testing.T) {
	shelf := &fakeShelf{
		loggedIn: true,
		data: pathHandler(map[string]string{
			"/slot/2/api/data/dev.json": "Pretty-print enabled\n{\"name\": \"decorated\"}",
		}),
	}
	client := newTestClient(t, shelf)

	payload, err := client.FetchSlotSections(context.Background(), 2, []models.Section{models.SectionDev})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name": "decorated"}`, string(payload.Section(models.SectionDev)))
}

func TestFetchSlotSections_FallbackCombined(t *testing.T) {
	shelf := &fakeShelf{
		loggedIn: true,
		data: pathHandler(map[string]string{
			"/slot/3/api/data.json": `{"data": {"dev": {"name": "combined"}, "alarms": {}}}`,
		}),
	}
	client := newTestClient(t, shelf)

	payload, err := client.FetchSlotSections(context.Background(), 3, models.RequiredSections())
	require.NoError(t, err)

	assert.Equal(t, 2, payload.SectionCount())
	assert.JSONEq(t, `{"name": "combined"}`, string(payload.Section(models.SectionDev)))
}

func TestFetchSlotSections_ReauthRetry(t *testing.T) {
	shelf := &fakeShelf{
		data: pathHandler(map[string]string{
			"/slot/4/api/data/dev.json":    `{"name": "HD-XC"}`,
			"/slot/4/api/data/store.json":  `{"mem_usage": {}}`,
			"/slot/4/api/data/alarms.json": `{"status": {}}`,
		}),
	}
	client := newTestClient(t, shelf)

	require.NoError(t, client.Authenticate(context.Background()))
	require.Equal(t, 1, shelf.posts())

	// Devices drop sessions between requests; the client should log back
	// in once and retry transparently.
	shelf.expire()

	payload, err := client.FetchSlotSections(context.Background(), 4, models.RequiredSections())
	require.NoError(t, err)

	assert.Equal(t, 3, payload.SectionCount())
	assert.Equal(t, 2, shelf.posts())
}

func TestFetchSlotSections_ConcurrentExpiryRelogsInOnce(t *testing.T) {
	shelf := &fakeShelf{
		data: pathHandler(map[string]string{
			"/slot/4/api/data/dev.json":    `{"name": "HD-XC"}`,
			"/slot/4/api/data/alarms.json": `{"status": {}}`,
			"/slot/5/api/data/dev.json":    `{"name": "HD-XC"}`,
			"/slot/5/api/data/alarms.json": `{"status": {}}`,
		}),
	}
	client := newTestClient(t, shelf)

	require.NoError(t, client.Authenticate(context.Background()))
	require.Equal(t, 1, shelf.posts())

	shelf.expire()

	// Both tasks observe the expired session; only the first to react may
	// log back in, the other waits it out and retries.
	var wg sync.WaitGroup

	errs := make([]error, 2)

	for i, slot := range []models.SlotID{4, 5} {
		wg.Add(1)

		go func(idx int, slot models.SlotID) {
			defer wg.Done()

			_, errs[idx] = client.FetchFocused(context.Background(), slot)
		}(i, slot)
	}

	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 2, shelf.posts())
}

func TestFetchSlotSections_LargeSectionReadInFull(t *testing.T) {
	// Section bodies are not subject to the login-page read cap; a dump
	// larger than it must come back intact.
	pad := strings.Repeat("x", 2<<20)

	shelf := &fakeShelf{
		loggedIn: true,
		data: pathHandler(map[string]string{
			"/slot/4/api/data/dev.json": `{"name": "HD-XC", "pad": "` + pad + `"}`,
		}),
	}
	client := newTestClient(t, shelf)

	payload, err := client.FetchSlotSections(context.Background(), 4, []models.Section{models.SectionDev})
	require.NoError(t, err)

	section := payload.Section(models.SectionDev)
	assert.Greater(t, len(section), 2<<20)
	assert.True(t, json.Valid(section))
}

func TestFetchSlotSections_ReauthFailure(t *testing.T) {
	shelf := &fakeShelf{
		data: pathHandler(map[string]string{
			"/slot/4/api/data/dev.json": `{"name": "HD-XC"}`,
		}),
	}
	client := newTestClient(t, shelf)

	require.NoError(t, client.Authenticate(context.Background()))

	shelf.expire()
	client.config.Password = "rotated"

	_, err := client.FetchSlotSections(context.Background(), 4, []models.Section{models.SectionDev})
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestFetchFocused_Sections(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)

	shelf := &fakeShelf{
		loggedIn: true,
		data: func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			paths = append(paths, r.URL.Path)
			mu.Unlock()

			_, _ = w.Write([]byte(`{}`))
		},
	}
	client := newTestClient(t, shelf)

	payload, err := client.FetchFocused(context.Background(), 6)
	require.NoError(t, err)

	assert.Equal(t, 2, payload.SectionCount())
	assert.ElementsMatch(t, []string{
		"/slot/6/api/data/dev.json",
		"/slot/6/api/data/alarms.json",
	}, paths)
}

func TestFetchFocused_NothingAvailable(t *testing.T) {
	shelf := &fakeShelf{
		loggedIn: true,
		data:     pathHandler(map[string]string{}),
	}
	client := newTestClient(t, shelf)

	_, err := client.FetchFocused(context.Background(), 6)
	require.ErrorIs(t, err, ErrNoSections)
}

func TestFetchFallback_MalformedBody(t *testing.T) {
	shelf := &fakeShelf{
		loggedIn: true,
		data: pathHandler(map[string]string{
			"/slot/3/api/data.json": "<html>maintenance mode</html>",
		}),
	}
	client := newTestClient(t, shelf)

	_, err := client.FetchFallback(context.Background(), 3)
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "plain document",
			body: `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "pretty print banner",
			body: "Pretty-print\n{\"a\": 1}",
			want: `{"a": 1}`,
		},
		{
			name: "markup wrapped",
			body: `<pre>{"a": 1}</pre>`,
			want: `{"a": 1}`,
		},
		{
			name:    "no json at all",
			body:    "<html>error</html>",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			body:    `{"a": `,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedResponse)
				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
