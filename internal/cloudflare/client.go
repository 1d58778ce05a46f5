// Package cloudflare is a read-only client for the Cloudflare v4 API,
// covering zone and DNS record listing.
package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kreigan/dns-navpage/internal/logger"
)

// DefaultBaseURL is the Cloudflare v4 API base address.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

// perPage is the page size used for paginated listings.
const perPage = 100

// Client is a Cloudflare API client for API version 4.
type Client struct {
	baseURL    string
	token      string
	email      string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithBaseURL overrides the API base URL, primarily for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout bounds each outbound call's wall-clock time.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Cloudflare client. The token is sent as a Bearer
// credential; email, if non-empty, is sent as X-Auth-Email for legacy keys.
func NewClient(token, email string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		email:      email,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET request against the API and returns the raw body.
// Non-2xx responses and success:false envelopes are surfaced as *APIError.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	c.log.HTTPRequest("GET", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if c.email != "" {
		req.Header.Set("X-Auth-Email", c.email)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("HTTP request failed: GET %s: %v", reqURL, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.HTTPResponse("GET", reqURL, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.handleError(path, resp.StatusCode, body)
	}

	return body, nil
}

// handleError builds an *APIError from an error response body.
func (c *Client) handleError(path string, statusCode int, body []byte) error {
	var envelope struct {
		Errors []ResponseInfo `json:"errors"`
	}
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Messages = envelope.Errors
	}
	c.log.Error("API error: GET %s -> %s", path, apiErr)
	return apiErr
}

// ListZones returns all zones accessible to the credential, in the order the
// API returns them across pages.
// GET /zones
func (c *Client) ListZones(ctx context.Context) ([]Zone, error) {
	var zones []Zone

	for page := 1; ; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		body, err := c.get(ctx, "/zones", query)
		if err != nil {
			return nil, err
		}

		var envelope zonesEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if !envelope.Success {
			return nil, &APIError{StatusCode: http.StatusOK, Messages: envelope.Errors}
		}

		zones = append(zones, envelope.Result...)
		if len(envelope.Result) < perPage {
			break
		}
	}

	return zones, nil
}

// ListDNSRecords returns all DNS records of a zone, in the order the API
// returns them across pages.
// GET /zones/{zone_id}/dns_records
func (c *Client) ListDNSRecords(ctx context.Context, zoneID string) ([]DNSRecord, error) {
	var records []DNSRecord

	path := fmt.Sprintf("/zones/%s/dns_records", zoneID)
	for page := 1; ; page++ {
		query := url.Values{
			"per_page": {strconv.Itoa(perPage)},
			"page":     {strconv.Itoa(page)},
		}
		body, err := c.get(ctx, path, query)
		if err != nil {
			return nil, err
		}

		var envelope recordsEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if !envelope.Success {
			return nil, &APIError{StatusCode: http.StatusOK, Messages: envelope.Errors}
		}

		records = append(records, envelope.Result...)
		if len(envelope.Result) < perPage {
			break
		}
	}

	return records, nil
}
