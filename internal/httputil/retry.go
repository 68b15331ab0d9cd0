// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the API clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the base duration for exponential backoff on
// throttled responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 3 * time.Second

const defaultMaxRetries = 5

// retryable reports whether a status signals transient throttling.
// arXiv answers 503 when asking clients to slow down; OpenAI-style
// APIs use 429.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries throttled responses
// (HTTP 429 and 503) with exponential backoff: RetryBaseDelay doubled
// each attempt. A Retry-After header on the response, when present and
// longer than the computed backoff, extends the wait.
//
// When maxRetries is 0 the default (5) is used. The throttled response
// body is drained and closed before sleeping. If the context is
// cancelled during a wait the function returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// report its status.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	backoff := RetryBaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff
		if ra := retryAfter(resp); ra > wait {
			wait = ra
		}
		backoff *= 2

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// retryAfter parses the Retry-After header, seconds form only.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
