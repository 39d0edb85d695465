// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/apex/log"

	"github.com/staranto/deckctl/internal/cache"
	"github.com/staranto/deckctl/internal/fetch"
	"github.com/staranto/deckctl/internal/schema"
)

// ErrInvalidArgument is logged when an operation is called with arguments it
// cannot turn into a request.
var ErrInvalidArgument = errors.New("invalid argument")

// Hook observes the raw payload of an operation before it is validated. It is
// handed its own copy of the payload. A non-nil error or a panic fails the
// operation.
type Hook func(ctx context.Context, payload []byte) error

// Client is the entry point to the API. It is safe for concurrent use.
type Client struct {
	baseURL string
	cache   *cache.Cache
	logger  log.Interface
}

type options struct {
	baseURL    string
	ttl        time.Duration
	logger     log.Interface
	cache      *cache.Cache
	fetch      fetch.Options
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*options)

func WithBaseURL(raw string) Option {
	return func(o *options) {
		if raw != "" {
			o.baseURL = raw
		}
	}
}

// WithTTL sets how long responses are reused. Ignored when WithCache is used.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

func WithLogger(logger log.Interface) Option {
	return func(o *options) { o.logger = logger }
}

// WithTestMode collapses every retry wait to a few milliseconds.
func WithTestMode(on bool) Option {
	return func(o *options) { o.fetch.TestMode = on }
}

// WithTimeout bounds each request attempt.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.fetch.Timeout = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.httpClient = h }
}

// WithFetchOptions replaces the retry settings wholesale.
func WithFetchOptions(fo fetch.Options) Option {
	return func(o *options) { o.fetch = fo }
}

// WithCache shares an existing cache, and through it its fetcher, with this
// client.
func WithCache(c *cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// New returns a Client. Without options it talks to the public API with a
// 10 second cache.
func New(opts ...Option) *Client {
	o := options{
		baseURL: DefaultBaseURL,
		ttl:     cache.DefaultTTL,
		logger:  log.Log,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := o.cache
	if c == nil {
		fo := o.fetch
		if fo.Logger == nil {
			fo.Logger = o.logger
		}
		if fo.HTTPClient == nil {
			fo.HTTPClient = o.httpClient
		}
		c = cache.New(fetch.New(fo), cache.WithTTL(o.ttl), cache.WithLogger(o.logger))
	}

	return &Client{
		baseURL: normalizeBaseURL(o.baseURL),
		cache:   c,
		logger:  o.logger,
	}
}

// NewShuffledDeck asks for a freshly shuffled deck made of deckCount standard
// decks. A deckCount below one lets the API choose, which is one deck.
func (c *Client) NewShuffledDeck(ctx context.Context, deckCount int, hook Hook) *Deck {
	v, err := run[Deck](ctx, c, c.shuffleNewDeckURL(deckCount), DeckSchema, "Deck", hook)
	return orNil(c, v, err)
}

// NewDeck asks for a new deck in factory order.
func (c *Client) NewDeck(ctx context.Context, hook Hook) *Deck {
	v, err := run[Deck](ctx, c, c.newDeckURL(), DeckSchema, "Deck", hook)
	return orNil(c, v, err)
}

// Draw takes count cards off the top of deckID.
func (c *Client) Draw(ctx context.Context, deckID string, count int, hook Hook) *DrawnCards {
	if deckID == "" || count < 1 {
		c.fail(fmt.Errorf("draw %d from %q: %w", count, deckID, ErrInvalidArgument))
		return nil
	}
	v, err := run[DrawnCards](ctx, c, c.drawURL(deckID, count), DrawnCardsSchema, "DrawnCards", hook)
	return orNil(c, v, err)
}

// Reshuffle shuffles deckID. With remainingOnly the cards already drawn stay
// out of the deck.
func (c *Client) Reshuffle(ctx context.Context, deckID string, remainingOnly bool, hook Hook) *Deck {
	if deckID == "" {
		c.fail(fmt.Errorf("reshuffle: empty deck id: %w", ErrInvalidArgument))
		return nil
	}
	v, err := run[Deck](ctx, c, c.reshuffleURL(deckID, remainingOnly), DeckSchema, "Deck", hook)
	return orNil(c, v, err)
}

// orNil is the only place an error is turned into a nil result.
func orNil[T any](c *Client, v T, err error) *T {
	if err != nil {
		c.fail(err)
		return nil
	}
	return &v
}

func (c *Client) fail(err error) {
	c.logger.WithError(err).Error("deck operation failed")
}

// run is one operation: cache lookup or fetch, hook, validation.
func run[T any](ctx context.Context, c *Client, url string, s schema.Schema, label string, hook Hook) (T, error) {
	var zero T

	resp, err := c.cache.Get(ctx, url)
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", url, err)
	}

	if hook != nil {
		if err := callHook(ctx, hook, bytes.Clone(resp.Body)); err != nil {
			return zero, fmt.Errorf("hook for %s: %w", url, err)
		}
	}

	return schema.Decode[T](resp.Body, s, label, c.logger)
}

func callHook(ctx context.Context, hook Hook, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return hook(ctx, payload)
}

// Cache exposes the response cache, shared by every operation on c.
func (c *Client) Cache() *cache.Cache { return c.cache }
