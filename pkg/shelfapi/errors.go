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
	"fmt"
	"net"
)

var (
	// ErrInvalidCredentials indicates the device rejected the login form.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProtocolMismatch indicates a login page without a parseable form.
	ErrProtocolMismatch = errors.New("login form not found where one was expected")
	// ErrTransport wraps connection-level failures during authentication.
	ErrTransport = errors.New("transport error")
	// ErrAuthenticationFailed indicates re-authentication failed mid-fetch;
	// fatal for the in-flight slot fetch only.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrSectionUnavailable indicates a section endpoint returned no usable data.
	ErrSectionUnavailable = errors.New("section unavailable")
	// ErrMalformedResponse indicates a body no JSON could be extracted from.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNoSections indicates a slot fetch yielded zero sections.
	ErrNoSections = errors.New("no data sections fetched")

	errUnexpectedStatusCode = errors.New("unexpected status code")
	errLoginPage            = errors.New("redirected to login page")
	errAggregateShape       = errors.New("unexpected shape in slot aggregate response")
)

// ErrorKind categorizes terminal failures so callers can render distinct
// messaging without inspecting error internals.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConnection
	KindTimeout
	KindAuth
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindAuth:
		return "auth"
	case KindMalformed:
		return "malformed"
	case KindUnknown:
		return "unknown"
	}

	return "unknown"
}

// Classify maps an error to its kind and a human-readable message.
func Classify(err error) (ErrorKind, string) {
	switch {
	case err == nil:
		return KindUnknown, ""
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAuthenticationFailed):
		return KindAuth, "Authentication failed. Please check username and password."
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return KindTimeout, "Connection timed out. The device might be busy or unreachable."
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed, "Invalid response from the device."
	case errors.Is(err, ErrTransport), isConnectionError(err):
		return KindConnection, "Connection error. Please check the device address and network connection."
	default:
		return KindUnknown, fmt.Sprintf("Error fetching data: %v", err)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	var opErr *net.OpError

	return errors.As(err, &opErr)
}
