// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package deck

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public API root every path is appended to.
const DefaultBaseURL = "https://deckofcardsapi.com/api/deck"

func (c *Client) shuffleNewDeckURL(deckCount int) string {
	if deckCount > 0 {
		return fmt.Sprintf("%s/new/shuffle/?deck_count=%d", c.baseURL, deckCount)
	}
	return c.baseURL + "/new/shuffle/"
}

func (c *Client) newDeckURL() string {
	return c.baseURL + "/new/"
}

func (c *Client) drawURL(deckID string, count int) string {
	return fmt.Sprintf("%s/%s/draw/?count=%d", c.baseURL, url.PathEscape(deckID), count)
}

func (c *Client) reshuffleURL(deckID string, remainingOnly bool) string {
	u := fmt.Sprintf("%s/%s/shuffle/", c.baseURL, url.PathEscape(deckID))
	if remainingOnly {
		u += "?remaining=true"
	}
	return u
}

func normalizeBaseURL(raw string) string {
	return strings.TrimRight(raw, "/")
}
