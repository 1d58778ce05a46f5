package cloudflare

import "fmt"

// Zone represents a zone (a registered domain) in the Cloudflare v4 API.
// See: https://developers.cloudflare.com/api/resources/zones/
type Zone struct {
	// ID is the opaque zone identifier assigned by Cloudflare
	ID string `json:"id"`
	// Name is the domain name (e.g. "example.com")
	Name string `json:"name"`
	// Status of the zone (e.g. "active", "pending")
	Status string `json:"status,omitempty"`
}

// DNSRecord represents a single DNS record within a zone.
// See: https://developers.cloudflare.com/api/resources/dns/subresources/records/
type DNSRecord struct {
	// ID is the opaque record identifier
	ID string `json:"id"`
	// ZoneID is the owning zone's identifier
	ZoneID string `json:"zone_id"`
	// ZoneName is the owning zone's domain name
	ZoneName string `json:"zone_name"`
	// Name is the full record name (e.g. "www.example.com")
	Name string `json:"name"`
	// Type of this record (e.g. "A", "CNAME", "TXT")
	Type string `json:"type"`
	// Content is the record's target value
	Content string `json:"content"`
	// Proxied indicates whether traffic is routed through Cloudflare
	Proxied bool `json:"proxied"`
	// TTL is the record's time to live in seconds (1 = automatic)
	TTL int `json:"ttl,omitempty"`
}

// ResponseInfo carries one error or message entry from the API envelope.
type ResponseInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ResultInfo carries pagination state from the API envelope.
type ResultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
}

// zonesEnvelope is the response body of GET /zones.
type zonesEnvelope struct {
	Success    bool           `json:"success"`
	Errors     []ResponseInfo `json:"errors"`
	Messages   []ResponseInfo `json:"messages"`
	Result     []Zone         `json:"result"`
	ResultInfo ResultInfo     `json:"result_info"`
}

// recordsEnvelope is the response body of GET /zones/{id}/dns_records.
type recordsEnvelope struct {
	Success    bool           `json:"success"`
	Errors     []ResponseInfo `json:"errors"`
	Messages   []ResponseInfo `json:"messages"`
	Result     []DNSRecord    `json:"result"`
	ResultInfo ResultInfo     `json:"result_info"`
}

// APIError represents a non-success response from the Cloudflare API.
type APIError struct {
	// StatusCode is the HTTP status of the response
	StatusCode int
	// Messages are the error entries from the response envelope, if any
	Messages []ResponseInfo
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf(
			"API error (status %d): %d: %s",
			e.StatusCode, e.Messages[0].Code, e.Messages[0].Message,
		)
	}
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}
