package navpage

import (
	"testing"

	"github.com/kreigan/dns-navpage/internal/cloudflare"
)

var defaultAllowed = []string{"A", "CNAME", "AAAA"}

func TestBareName(t *testing.T) {
	tests := []struct {
		name     string
		zone     string
		expected string
	}{
		{"www.example.com", "example.com", "www"},
		{"example.com", "example.com", ""},
		{"a.b.example.com", "example.com", "a.b"},
		{"mail.example.org", "example.com", "mail.example.org"},
	}

	for _, tt := range tests {
		if got := bareName(tt.name, tt.zone); got != tt.expected {
			t.Errorf("bareName(%q, %q) = %q, want %q", tt.name, tt.zone, got, tt.expected)
		}
	}
}

func TestKeep(t *testing.T) {
	tests := []struct {
		desc     string
		rec      cloudflare.DNSRecord
		prefixes []string
		expected bool
	}{
		{
			desc:     "allowed type, no exclusion",
			rec:      cloudflare.DNSRecord{Name: "www.example.com", Type: "A"},
			prefixes: []string{"mail"},
			expected: true,
		},
		{
			desc:     "type not allow-listed",
			rec:      cloudflare.DNSRecord{Name: "_dmarc.example.com", Type: "TXT"},
			prefixes: []string{"mail"},
			expected: false,
		},
		{
			desc:     "excluded prefix",
			rec:      cloudflare.DNSRecord{Name: "mail.example.com", Type: "A"},
			prefixes: []string{"mail"},
			expected: false,
		},
		{
			desc:     "prefix match is literal, not exact",
			rec:      cloudflare.DNSRecord{Name: "mailing.example.com", Type: "A"},
			prefixes: []string{"mail"},
			expected: false,
		},
		{
			desc:     "prefix match is case-sensitive",
			rec:      cloudflare.DNSRecord{Name: "Mail.example.com", Type: "A"},
			prefixes: []string{"mail"},
			expected: true,
		},
		{
			desc:     "empty exclude list retains underscore records of allowed type",
			rec:      cloudflare.DNSRecord{Name: "_acme-challenge.example.com", Type: "CNAME"},
			prefixes: nil,
			expected: true,
		},
		{
			desc:     "apex record has empty bare name",
			rec:      cloudflare.DNSRecord{Name: "example.com", Type: "A"},
			prefixes: []string{"mail"},
			expected: true,
		},
		{
			desc:     "missing type is dropped",
			rec:      cloudflare.DNSRecord{Name: "www.example.com"},
			prefixes: nil,
			expected: false,
		},
		{
			desc:     "missing name is dropped",
			rec:      cloudflare.DNSRecord{Type: "A"},
			prefixes: nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		got := keep(tt.rec, "example.com", defaultAllowed, tt.prefixes)
		if got != tt.expected {
			t.Errorf("%s: keep() = %v, want %v", tt.desc, got, tt.expected)
		}
	}
}

func TestGroup_FilterScenario(t *testing.T) {
	zones := []cloudflare.Zone{{ID: "zone1", Name: "example.com"}}
	recordsByZone := map[string][]cloudflare.DNSRecord{
		"zone1": {
			{Name: "www.example.com", Type: "A", Content: "1.2.3.4"},
			{Name: "_dmarc.example.com", Type: "TXT", Content: "v=DMARC1"},
			{Name: "mail.example.com", Type: "A", Content: "1.2.3.5"},
		},
	}

	groups := group(zones, recordsByZone, defaultAllowed, []string{"mail"})

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	if groups[0].Zone != "example.com" {
		t.Errorf("Expected zone 'example.com', got %q", groups[0].Zone)
	}
	if len(groups[0].Links) != 1 {
		t.Fatalf("Expected 1 surviving link, got %d: %+v", len(groups[0].Links), groups[0].Links)
	}
	link := groups[0].Links[0]
	if link.Name != "www.example.com" || link.Target != "1.2.3.4" {
		t.Errorf("Unexpected link: %+v", link)
	}
	if link.URL != "https://www.example.com" {
		t.Errorf("Expected https URL, got %q", link.URL)
	}
}

func TestGroup_ZoneCoverage(t *testing.T) {
	// A zone with no surviving records still gets a group.
	zones := []cloudflare.Zone{
		{ID: "zone1", Name: "example.com"},
		{ID: "zone2", Name: "example.org"},
	}
	recordsByZone := map[string][]cloudflare.DNSRecord{
		"zone1": {{Name: "www.example.com", Type: "A", Content: "1.2.3.4"}},
	}

	groups := group(zones, recordsByZone, defaultAllowed, nil)

	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[1].Zone != "example.org" {
		t.Errorf("Expected second group 'example.org', got %q", groups[1].Zone)
	}
	if len(groups[1].Links) != 0 {
		t.Errorf("Expected empty group for example.org, got %+v", groups[1].Links)
	}
}

func TestGroup_PreservesOrder(t *testing.T) {
	zones := []cloudflare.Zone{
		{ID: "zone2", Name: "example.org"},
		{ID: "zone1", Name: "example.com"},
	}
	recordsByZone := map[string][]cloudflare.DNSRecord{
		"zone1": {
			{Name: "b.example.com", Type: "A", Content: "1.1.1.2"},
			{Name: "a.example.com", Type: "A", Content: "1.1.1.1"},
		},
	}

	groups := group(zones, recordsByZone, defaultAllowed, nil)

	if groups[0].Zone != "example.org" || groups[1].Zone != "example.com" {
		t.Errorf("Zones reordered: %q, %q", groups[0].Zone, groups[1].Zone)
	}
	links := groups[1].Links
	if len(links) != 2 || links[0].Name != "b.example.com" || links[1].Name != "a.example.com" {
		t.Errorf("Records reordered: %+v", links)
	}
}
