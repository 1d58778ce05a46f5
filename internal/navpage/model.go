package navpage

import (
	"strings"

	"github.com/kreigan/dns-navpage/internal/cloudflare"
)

// Link is one record prepared for display.
type Link struct {
	// Name is the full record name (e.g. "www.example.com")
	Name string
	// URL is the https address the link points at
	URL string
	// Target is the record's content (IP address or CNAME target)
	Target string
	// Type is the DNS record type
	Type string
	// Proxied indicates whether the record is proxied through Cloudflare
	Proxied bool
}

// ZoneGroup is one zone's section on the page.
type ZoneGroup struct {
	// Zone is the zone's display name (the domain)
	Zone string
	// Links are the zone's surviving records, in API order
	Links []Link
}

// Model is the grouped navigation model handed to the template. Groups appear
// in API zone order and always cover every fetched zone, empty or not.
type Model struct {
	Groups      []ZoneGroup
	ShowTargets bool
	ShowTypes   bool
}

// bareName strips the zone suffix from a record name. The apex record's bare
// name is the empty string.
func bareName(name, zone string) string {
	if name == zone {
		return ""
	}
	return strings.TrimSuffix(name, "."+zone)
}

// keep decides whether a record is displayed: its type must be allow-listed
// and its bare name must not start with any excluded prefix. Records with a
// missing type or name are dropped rather than treated as an error.
func keep(rec cloudflare.DNSRecord, zone string, allowedTypes, excludePrefixes []string) bool {
	if rec.Type == "" || rec.Name == "" {
		return false
	}

	allowed := false
	for _, t := range allowedTypes {
		if rec.Type == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	bare := bareName(rec.Name, zone)
	for _, prefix := range excludePrefixes {
		if strings.HasPrefix(bare, prefix) {
			return false
		}
	}

	return true
}

// group buckets filtered records under their owning zone. Every zone gets a
// group even when no record survives; zone and record order follow the API.
func group(
	zones []cloudflare.Zone,
	recordsByZone map[string][]cloudflare.DNSRecord,
	allowedTypes, excludePrefixes []string,
) []ZoneGroup {
	groups := make([]ZoneGroup, 0, len(zones))

	for _, zone := range zones {
		zg := ZoneGroup{Zone: zone.Name, Links: []Link{}}
		for _, rec := range recordsByZone[zone.ID] {
			if !keep(rec, zone.Name, allowedTypes, excludePrefixes) {
				continue
			}
			zg.Links = append(zg.Links, Link{
				Name:    rec.Name,
				URL:     "https://" + rec.Name,
				Target:  rec.Content,
				Type:    rec.Type,
				Proxied: rec.Proxied,
			})
		}
		groups = append(groups, zg)
	}

	return groups
}
