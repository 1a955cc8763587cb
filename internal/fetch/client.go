// Package fetch pulls champion data from the three upstream sources: the
// Data Dragon CDN (descriptive text, full coverage), Community Dragon (the
// raw .bin damage extract) and the community wiki (scraped ability tables).
// Fetchers are thin collaborators: they produce stage documents and leave
// every merge decision to the pipeline.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const userAgent = "archetype-api/1.0 (+https://github.com/riftlab/archetype-api)"

// client wraps http with the retry/delay discipline every fetcher shares.
// Upstreams are third-party community services; be polite.
type client struct {
	http    *http.Client
	logger  *zap.SugaredLogger
	delay   time.Duration
	retries int
}

func newClient(logger *zap.SugaredLogger) *client {
	return &client{
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
		delay:   500 * time.Millisecond,
		retries: 3,
	}
}

func (c *client) get(url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(c.delay * time.Duration(attempt))
		}
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warnw("fetch failed, retrying", "url", url, "attempt", attempt+1, "error", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, lastErr
			}
			continue
		}
		time.Sleep(c.delay)
		return body, nil
	}
	return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
}
