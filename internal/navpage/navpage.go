// Package navpage turns Cloudflare zones and records into a static HTML
// navigation page: fetch, filter, group by zone, render, write.
package navpage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/kreigan/dns-navpage/internal/cloudflare"
	"github.com/kreigan/dns-navpage/internal/config"
	"github.com/kreigan/dns-navpage/internal/logger"
)

// CloudflareClient defines the interface for the Cloudflare operations the
// builder needs.
type CloudflareClient interface {
	ListZones(ctx context.Context) ([]cloudflare.Zone, error)
	ListDNSRecords(ctx context.Context, zoneID string) ([]cloudflare.DNSRecord, error)
}

// Builder runs the pipeline once.
type Builder struct {
	client   CloudflareClient
	settings *config.Settings
	log      *logger.Logger
}

// NewBuilder creates a new builder.
func NewBuilder(client CloudflareClient, settings *config.Settings, log *logger.Logger) *Builder {
	return &Builder{
		client:   client,
		settings: settings,
		log:      log,
	}
}

// BuildOptions contains options for the Build operation.
type BuildOptions struct {
	DryRun bool
}

// Result contains the results of a Build operation.
type Result struct {
	Zones          int
	RecordsFetched int
	LinksKept      int
	OutputPath     string
	Written        bool
}

// Build fetches all zones and their records, filters and groups them, renders
// the template, and writes the output file. The page is rendered fully in
// memory first; on any failure the previous output file is left untouched.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) (*Result, error) {
	result := &Result{OutputPath: b.settings.OutputPath}

	// Step 1: Fetch zones
	b.log.Info("Fetching zones...")
	zones, err := b.client.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	result.Zones = len(zones)
	b.log.Info("Fetched %d zone(s)", len(zones))

	// Step 2: Fetch records per zone, in zone order
	recordsByZone := make(map[string][]cloudflare.DNSRecord)
	for _, zone := range zones {
		b.log.Info("  Fetching records for zone: %s", zone.Name)
		records, err := b.client.ListDNSRecords(ctx, zone.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list records for zone %s: %w", zone.Name, err)
		}
		recordsByZone[zone.ID] = records
		result.RecordsFetched += len(records)
		b.log.Debug("    %d record(s)", len(records))
	}

	// Step 3: Filter and group
	groups := group(zones, recordsByZone, b.settings.AllowedTypes, b.settings.ExcludePrefixes)
	for _, zg := range groups {
		result.LinksKept += len(zg.Links)
	}
	b.log.Info("Kept %d link(s) after filtering", result.LinksKept)
	b.printGroups(groups)

	model := &Model{
		Groups:      groups,
		ShowTargets: b.settings.ShowTargets,
		ShowTypes:   b.settings.ShowTypes,
	}
	// Dropping empty groups is purely display policy; the grouped model above
	// always covers every zone.
	if !b.settings.ShowEmptyZones {
		model.Groups = withoutEmptyGroups(model.Groups)
	}

	// Step 4: Render
	templateText, err := os.ReadFile(b.settings.TemplatePath)
	if err != nil {
		return nil, &TemplateError{Path: b.settings.TemplatePath, Err: err}
	}

	var page bytes.Buffer
	if err := render(&page, b.settings.TemplatePath, string(templateText), model); err != nil {
		return nil, err
	}

	// Step 5: Write
	if opts.DryRun {
		b.log.Info("Would write %d byte(s) to %s", page.Len(), b.settings.OutputPath)
		return result, nil
	}

	if err := os.WriteFile(b.settings.OutputPath, page.Bytes(), 0o644); err != nil { //nolint:gosec // page is world-readable HTML
		return nil, &WriteError{Path: b.settings.OutputPath, Err: err}
	}
	result.Written = true
	b.log.Info("Wrote %d byte(s) to %s", page.Len(), b.settings.OutputPath)

	return result, nil
}

// printGroups shows the per-zone summary table.
func (b *Builder) printGroups(groups []ZoneGroup) {
	rows := make([][]string, 0, len(groups))
	for _, zg := range groups {
		rows = append(rows, []string{zg.Zone, strconv.Itoa(len(zg.Links))})
	}
	b.log.Table("Zones", []string{"ZONE", "LINKS"}, rows)
}

func withoutEmptyGroups(groups []ZoneGroup) []ZoneGroup {
	kept := make([]ZoneGroup, 0, len(groups))
	for _, zg := range groups {
		if len(zg.Links) > 0 {
			kept = append(kept, zg)
		}
	}
	return kept
}
