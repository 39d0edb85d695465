// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMaxAttempts is matched by every *MaxAttemptsExceeded via errors.Is.
var ErrMaxAttempts = errors.New("maximum attempts made with no valid response")

// NetworkFailure is a single failed attempt. StatusCode is zero when no
// response was received at all.
type NetworkFailure struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkFailure) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkFailure) Unwrap() error { return e.Err }

// RateLimited is a NetworkFailure the upstream issued to slow us down.
type RateLimited struct {
	*NetworkFailure
}

func (e *RateLimited) Error() string {
	return "rate limited: " + e.NetworkFailure.Error()
}

func (e *RateLimited) Unwrap() error { return e.NetworkFailure }

// MaxAttemptsExceeded is returned once every attempt has failed. Last is the
// failure of the final attempt.
type MaxAttemptsExceeded struct {
	URL      string
	Attempts int
	Last     error
}

func (e *MaxAttemptsExceeded) Error() string {
	return fmt.Sprintf("maximum attempts (%d) made to %s with no valid response: %v", e.Attempts, e.URL, e.Last)
}

func (e *MaxAttemptsExceeded) Unwrap() error { return e.Last }

func (e *MaxAttemptsExceeded) Is(target error) bool {
	return target == ErrMaxAttempts
}

// isRateLimit reports whether status is the upstream's way of saying slow down.
func isRateLimit(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

// classify turns the outcome of one attempt into a failure, or nil when the
// attempt succeeded.
func classify(url string, resp *http.Response, err error) error {
	if err != nil {
		return &NetworkFailure{URL: url, Err: err}
	}
	if resp == nil {
		return &NetworkFailure{URL: url, Err: errors.New("no response")}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	nf := &NetworkFailure{URL: url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	if isRateLimit(resp.StatusCode) {
		return &RateLimited{NetworkFailure: nf}
	}
	return nf
}
