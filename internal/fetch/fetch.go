// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	DefaultTimeout           = 15 * time.Second
	DefaultMaxRetries        = 3
	DefaultRateLimitCooldown = 5 * time.Second
	DefaultTestDelay         = 5 * time.Millisecond
)

// NoRetries is the MaxRetries value for a single attempt. Zero already means
// the default.
const NoRetries = -1

// DefaultSchedule is the wait after a generic failure, indexed by the number of
// attempts already made.
var DefaultSchedule = []time.Duration{10 * time.Millisecond, time.Second, 10 * time.Second}

// Response is the raw result of a successful fetch.
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	// Attempts is how many requests it took to get this response.
	Attempts int
}

// Clone returns a copy of r that shares no memory with it.
func (r Response) Clone() Response {
	r.Header = r.Header.Clone()
	r.Body = bytes.Clone(r.Body)
	return r
}

// Options configures a Fetcher. The zero value of any field selects its
// default.
type Options struct {
	// Timeout bounds each individual attempt, not the fetch as a whole.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt. Use
	// NoRetries, or any negative value, to make exactly one attempt.
	MaxRetries int
	// Schedule is the escalating wait for non rate limit failures. Attempts
	// beyond its length reuse the last entry.
	Schedule          []time.Duration
	RateLimitCooldown time.Duration
	// TestMode replaces every wait with TestDelay.
	TestMode   bool
	TestDelay  time.Duration
	HTTPClient *http.Client
	Logger     log.Interface
}

// Fetcher issues GET requests with retry and backoff. It is safe for
// concurrent use.
type Fetcher struct {
	opts   Options
	client *retryablehttp.Client
	logger log.Interface
}

// New returns a Fetcher for opts with defaults filled in.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	switch {
	case opts.MaxRetries < 0:
		opts.MaxRetries = 0
	case opts.MaxRetries == 0:
		opts.MaxRetries = DefaultMaxRetries
	}
	if len(opts.Schedule) == 0 {
		opts.Schedule = DefaultSchedule
	}
	if opts.RateLimitCooldown <= 0 {
		opts.RateLimitCooldown = DefaultRateLimitCooldown
	}
	if opts.TestDelay <= 0 {
		opts.TestDelay = DefaultTestDelay
	}
	if opts.Logger == nil {
		opts.Logger = log.Log
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	} else {
		// Copy so the per attempt timeout doesn't leak into the caller's client.
		c := *hc
		hc = &c
	}
	hc.Timeout = opts.Timeout

	f := &Fetcher{opts: opts, logger: opts.Logger}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = hc
	rc.RetryMax = opts.MaxRetries
	rc.Logger = leveled{logger: opts.Logger}
	rc.CheckRetry = f.checkRetry
	rc.Backoff = f.backoff
	rc.ErrorHandler = f.giveUp
	f.client = rc

	return f
}

// attempt tracks one Fetch call across the retry loop. It rides on the
// request context so the shared retryablehttp.Client stays stateless.
type attempt struct {
	url   string
	count int
	last  error
}

type attemptKey struct{}

// errGaveUp stands in for the final failure until Fetch replaces it with a
// *MaxAttemptsExceeded.
var errGaveUp = errors.New("gave up")

// Fetch GETs url, retrying failures until one attempt succeeds or the attempt
// budget is spent. Waits between attempts end early if ctx is done, in which
// case the context's error is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Response, error) {
	st := &attempt{url: url}
	req, err := retryablehttp.NewRequestWithContext(context.WithValue(ctx, attemptKey{}, st), http.MethodGet, url, nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		last := st.last
		if last == nil {
			last = err
		}
		return Response{}, &MaxAttemptsExceeded{URL: url, Attempts: st.count, Last: last}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	return Response{
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		Attempts:   st.count,
	}, nil
}

// Delay is the wait that follows a failed attempt. n counts the attempts
// already made, starting at zero; statusCode is zero for transport errors.
func (f *Fetcher) Delay(n int, statusCode int) time.Duration {
	if f.opts.TestMode {
		return f.opts.TestDelay
	}
	if isRateLimit(statusCode) {
		return f.opts.RateLimitCooldown
	}
	if n < 0 {
		n = 0
	}
	if n >= len(f.opts.Schedule) {
		n = len(f.opts.Schedule) - 1
	}
	return f.opts.Schedule[n]
}

// checkRetry classifies each attempt and logs every failure before the wait.
func (f *Fetcher) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	st, _ := ctx.Value(attemptKey{}).(*attempt)
	if st == nil {
		st = &attempt{}
	}
	st.count++

	failure := classify(st.url, resp, err)
	if failure == nil {
		return false, nil
	}
	st.last = failure

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	entry := f.logger.WithError(failure).WithField("attempt", st.count)
	if st.count > f.opts.MaxRetries {
		entry.Warn("request failed, giving up")
	} else {
		entry.WithField("wait", f.Delay(st.count-1, status)).Warn("request failed, retrying")
	}

	return true, nil
}

func (f *Fetcher) backoff(_, _ time.Duration, n int, resp *http.Response) time.Duration {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return f.Delay(n, status)
}

// giveUp runs once the last attempt has failed or the context was cancelled.
// The response, if any, is discarded; Fetch builds the caller facing error.
func (f *Fetcher) giveUp(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	if err == nil {
		err = errGaveUp
	}
	return nil, err
}
