// Package fetch downloads remote images with config-driven retry logic.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"brochure/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// maxDownloadBytes caps a single image download.
const maxDownloadBytes = 64 << 20

// Downloader fetches remote objects, retrying transient failures per the
// configured retry policy.
type Downloader struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
}

// NewDownloader creates a downloader with the given retry policy.
func NewDownloader(retryPolicy *config.RetryPolicy) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
	}
}

// Download fetches url and returns the body plus the reported content type.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error

	for attempt := 1; attempt <= d.retryPolicy.MaxAttempts; attempt++ {
		body, contentType, status, err := d.attempt(ctx, url)
		if err == nil {
			return body, contentType, nil
		}

		lastErr = fmt.Errorf("download failed (attempt %d/%d): %w", attempt, d.retryPolicy.MaxAttempts, err)

		// Network errors retry; HTTP errors retry only on temporary statuses.
		if errors.Is(err, ErrUnexpectedStatusCode) && !isRetryableStatus(status) {
			break
		}

		if attempt < d.retryPolicy.MaxAttempts {
			if sleepErr := sleepContext(ctx, d.retryPolicy.GetRetryDelay(attempt)); sleepErr != nil {
				return nil, "", sleepErr
			}
		}
	}

	return nil, "", lastErr
}

func (d *Downloader) attempt(ctx context.Context, url string) ([]byte, string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", resp.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, "", resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), resp.StatusCode, nil
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
