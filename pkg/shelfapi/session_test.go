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
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/magnusoverli/VirtEditor/pkg/logger"
)

const loginPageHTML = `<html><body>
<form action="/api/login" method="post">
	<input type="hidden" name="token" value="t0k3n">
	<input type="text" name="us_name">
	<input type="password" name="pw_word">
</form>
</body></html>`

// fakeShelf simulates the device management plane: unauthenticated requests
// get the login page, the login endpoint flips session state, and
// authenticated requests are delegated to the data handler.
type fakeShelf struct {
	mu         sync.Mutex
	loggedIn   bool
	loginPosts int
	lastLogin  url.Values

	// data serves authenticated requests. Nil falls back to a plain 200.
	data http.HandlerFunc
}

func (f *fakeShelf) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost && r.URL.Path == "/api/login" {
		f.handleLogin(w, r)
		return
	}

	f.mu.Lock()
	loggedIn := f.loggedIn
	f.mu.Unlock()

	if !loggedIn {
		_, _ = w.Write([]byte(loginPageHTML))
		return
	}

	if f.data != nil {
		f.data(w, r)
		return
	}

	_, _ = w.Write([]byte(`{"ok": true}`))
}

func (f *fakeShelf) handleLogin(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	f.mu.Lock()
	f.loginPosts++
	f.lastLogin = r.PostForm
	f.mu.Unlock()

	if r.PostFormValue("us_name") == "admin" && r.PostFormValue("pw_word") == "secret" {
		f.mu.Lock()
		f.loggedIn = true
		f.mu.Unlock()

		_, _ = w.Write([]byte("welcome"))

		return
	}

	_, _ = w.Write([]byte("Login failed: incorrect credentials"))
}

func (f *fakeShelf) posts() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.loginPosts
}

func (f *fakeShelf) expire() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loggedIn = false
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &ClientConfig{
		Host:     strings.TrimPrefix(server.URL, "http://"),
		Username: "admin",
		Password: "secret",
	}

	client, err := New(cfg, logger.NewTestLogger())
	require.NoError(t, err)

	return client
}

func TestAuthenticate_FormLogin(t *testing.T) {
	shelf := &fakeShelf{}
	client := newTestClient(t, shelf)

	require.NoError(t, client.Authenticate(context.Background()))

	assert.Equal(t, 1, shelf.posts())

	// Dynamically discovered field names and CSRF passthrough.
	assert.Equal(t, "admin", shelf.lastLogin.Get("us_name"))
	assert.Equal(t, "secret", shelf.lastLogin.Get("pw_word"))
	assert.Equal(t, "t0k3n", shelf.lastLogin.Get("token"))
}

func TestAuthenticate_Idempotent(t *testing.T) {
	shelf := &fakeShelf{}
	client := newTestClient(t, shelf)

	require.NoError(t, client.Authenticate(context.Background()))
	require.NoError(t, client.Authenticate(context.Background()))

	assert.Equal(t, 1, shelf.posts())
}

func TestAuthenticate_ConcurrentSingleLogin(t *testing.T) {
	shelf := &fakeShelf{}
	client := newTestClient(t, shelf)

	const callers = 10

	var wg sync.WaitGroup

	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			errs[idx] = client.Authenticate(context.Background())
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 1, shelf.posts())
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	shelf := &fakeShelf{}
	client := newTestClient(t, shelf)
	client.config.Password = "wrong"

	err := client.Authenticate(context.Background())
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Session stays unauthenticated; the next call tries again.
	err = client.Authenticate(context.Background())
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, shelf.posts())
}

func TestAuthenticate_SessionAlreadyValid(t *testing.T) {
	shelf := &fakeShelf{loggedIn: true}
	client := newTestClient(t, shelf)

	require.NoError(t, client.Authenticate(context.Background()))
	assert.Zero(t, shelf.posts())
}

func TestAuthenticate_LoginPageWithoutForm(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>Please login</body></html>"))
	}))

	err := client.Authenticate(context.Background())
	require.ErrorIs(t, err, ErrProtocolMismatch)
}

func TestAuthenticate_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)

	errRefused := errors.New("dial tcp 192.0.2.10:80: connection refused")

	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Return(nil, errRefused)

	cfg := &ClientConfig{
		Host:     "192.0.2.10",
		Username: "admin",
		Password: "secret",
	}

	client := NewWithHTTPClient(cfg, httpClient, logger.NewTestLogger())

	err := client.Authenticate(context.Background())
	require.ErrorIs(t, err, ErrTransport)
	require.ErrorIs(t, err, errRefused)
}
