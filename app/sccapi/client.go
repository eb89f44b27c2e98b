package sccapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"patchsheet/app/patch"
)

const (
	// DefaultBaseURL is the public SUSE patch finder API root.
	DefaultBaseURL = "https://scc.suse.com/api/frontend/patch_finder"

	searchPath = "/search/perform.json"
	patchPath  = "/patches/"

	defaultTimeout        = 30 * time.Second
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultPageDelay      = 150 * time.Millisecond
)

// Query is the product scope shared by every listing request.
type Query struct {
	ProductNames         string
	ProductVersions      string
	ProductArchitectures string
}

func (q Query) values() url.Values {
	params := url.Values{}
	params.Set("product_architectures", q.ProductArchitectures)
	params.Set("product_names", q.ProductNames)
	params.Set("product_versions", q.ProductVersions)
	return params
}

// Client talks to the patch finder API. Requests are strictly
// sequential; pagination cursors and the remote rate limits are not
// verified under concurrent access.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string

	// MaxAttempts requests per logical fetch; retry N waits
	// RetryBaseDelay*N before re-issuing (linear backoff).
	MaxAttempts    int
	RetryBaseDelay time.Duration

	// PageDelay precedes every listing page after the first.
	PageDelay time.Duration
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		HTTPClient:     &http.Client{Timeout: defaultTimeout},
		BaseURL:        baseURL,
		UserAgent:      userAgent,
		MaxAttempts:    defaultMaxAttempts,
		RetryBaseDelay: defaultRetryBaseDelay,
		PageDelay:      defaultPageDelay,
	}
}

type searchResponse struct {
	Hits []patch.Hit `json:"hits"`
	Meta struct {
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

// FetchSeverity collects every page of one severity-scoped search and
// returns the hits in server order, each stamped with the severity tag.
// Page 1 has no pre-delay; pages 2..N each wait PageDelay first. Any
// page exhausting its retries aborts the whole severity: truncated
// pagination would corrupt the merged listing relied on by filtering.
func (c *Client) FetchSeverity(ctx context.Context, severity string, query Query) ([]patch.Hit, error) {
	params := query.values()
	params.Set("severity", severity)
	params.Set("page", "1")

	var first searchResponse
	if err := c.getJSON(ctx, c.BaseURL+searchPath, params, &first); err != nil {
		return nil, fmt.Errorf("severity %s page 1: %w", severity, err)
	}

	totalPages := first.Meta.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	all := stampSeverity(first.Hits, severity)

	for page := 2; page <= totalPages; page++ {
		if err := sleep(ctx, c.PageDelay); err != nil {
			return nil, err
		}

		params.Set("page", strconv.Itoa(page))

		var resp searchResponse
		if err := c.getJSON(ctx, c.BaseURL+searchPath, params, &resp); err != nil {
			return nil, fmt.Errorf("severity %s page %d: %w", severity, page, err)
		}
		all = append(all, stampSeverity(resp.Hits, severity)...)
	}

	return all, nil
}

// FetchDetail retrieves the supplementary fields for one patch id.
// Retry exhaustion surfaces as an error; deciding whether that is fatal
// is the caller's business.
func (c *Client) FetchDetail(ctx context.Context, id string) (patch.Detail, error) {
	var detail patch.Detail
	if err := c.getJSON(ctx, c.BaseURL+patchPath+url.PathEscape(id), nil, &detail); err != nil {
		return patch.Detail{}, err
	}
	return detail, nil
}

// getJSON is the transport primitive: one GET with retries, decoding
// the body into out. It never inspects the payload shape. Transport
// errors, non-2xx statuses, and decode failures all count as a failed
// attempt; after MaxAttempts the last error is returned as-is.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	var lastErr error

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, time.Duration(attempt-1)*c.RetryBaseDelay); err != nil {
				return err
			}
		}

		if lastErr = c.doOnce(ctx, rawURL, params, out); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", c.MaxAttempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, rawURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func stampSeverity(hits []patch.Hit, severity string) []patch.Hit {
	for i := range hits {
		hits[i].Severity = severity
	}
	return hits
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
