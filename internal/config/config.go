// Package config handles runtime settings for the navigation page generator.
//
// Credentials come from the environment (CF_API_TOKEN, CF_EMAIL); everything
// else has compiled-in defaults that an optional YAML settings file and CLI
// flags may override, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized at startup.
const (
	EnvAPIToken = "CF_API_TOKEN"
	EnvEmail    = "CF_EMAIL"
	EnvOutput   = "NAVPAGE_OUTPUT"
	EnvTemplate = "NAVPAGE_TEMPLATE"
)

// DefaultTimeout bounds every outbound API call. There is no retry; a hung
// call would otherwise block the whole run indefinitely.
const DefaultTimeout = 30 * time.Second

// recordTypes enumerates the DNS record types the Cloudflare API can return.
var recordTypes = map[string]bool{
	"A": true, "AAAA": true, "CNAME": true, "MX": true, "TXT": true,
	"NS": true, "SRV": true, "CAA": true, "PTR": true, "SOA": true,
}

// Settings holds everything one run needs.
type Settings struct {
	// Token is the Cloudflare API token. Required.
	Token string
	// Email is the account email for legacy API key auth. Optional.
	Email string
	// OutputPath is where the rendered HTML page is written.
	OutputPath string
	// TemplatePath points at the HTML template file.
	TemplatePath string
	// AllowedTypes are the record types eligible for display.
	AllowedTypes []string
	// ExcludePrefixes drops records whose bare name starts with any entry.
	ExcludePrefixes []string
	// ShowEmptyZones renders zones that have no surviving records.
	ShowEmptyZones bool
	// ShowTargets renders each record's target under its link.
	ShowTargets bool
	// ShowTypes renders each record's type next to its target.
	ShowTypes bool
	// Timeout bounds each outbound API call.
	Timeout time.Duration
}

// fileSettings is the YAML settings file shape. Pointer fields distinguish
// "absent" from "explicitly false/empty".
type fileSettings struct {
	Output          string    `yaml:"output,omitempty"`
	Template        string    `yaml:"template,omitempty"`
	AllowedTypes    []string  `yaml:"allowed_types,omitempty"`
	ExcludePrefixes *[]string `yaml:"exclude_prefixes,omitempty"`
	ShowEmptyZones  *bool     `yaml:"show_empty_zones,omitempty"`
	ShowTargets     *bool     `yaml:"show_targets,omitempty"`
	ShowTypes       *bool     `yaml:"show_types,omitempty"`
	TimeoutSeconds  int       `yaml:"timeout_seconds,omitempty"`
}

// Default returns the compiled-in settings: website-like record types only,
// the usual non-website prefixes excluded, credentials from the environment.
func Default() *Settings {
	s := &Settings{
		Token:           os.Getenv(EnvAPIToken),
		Email:           os.Getenv(EnvEmail),
		OutputPath:      "index.html",
		TemplatePath:    "template.html",
		AllowedTypes:    []string{"A", "CNAME", "AAAA"},
		ExcludePrefixes: []string{"_acme-challenge", "mail", "ftp", "localhost"},
		ShowEmptyZones:  false,
		ShowTargets:     true,
		ShowTypes:       true,
		Timeout:         DefaultTimeout,
	}
	if out := os.Getenv(EnvOutput); out != "" {
		s.OutputPath = out
	}
	if tmpl := os.Getenv(EnvTemplate); tmpl != "" {
		s.TemplatePath = tmpl
	}
	return s
}

// LoadFile overlays a YAML settings file onto s. Unknown keys are rejected.
func (s *Settings) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is from CLI argument
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var fs fileSettings
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		return fmt.Errorf("failed to parse settings file: %w", err)
	}

	if fs.Output != "" {
		s.OutputPath = fs.Output
	}
	if fs.Template != "" {
		s.TemplatePath = fs.Template
	}
	if len(fs.AllowedTypes) > 0 {
		s.AllowedTypes = fs.AllowedTypes
	}
	if fs.ExcludePrefixes != nil {
		s.ExcludePrefixes = *fs.ExcludePrefixes
	}
	if fs.ShowEmptyZones != nil {
		s.ShowEmptyZones = *fs.ShowEmptyZones
	}
	if fs.ShowTargets != nil {
		s.ShowTargets = *fs.ShowTargets
	}
	if fs.ShowTypes != nil {
		s.ShowTypes = *fs.ShowTypes
	}
	if fs.TimeoutSeconds != 0 {
		s.Timeout = time.Duration(fs.TimeoutSeconds) * time.Second
	}

	return nil
}

// ValidationError holds all validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"validation failed with %d error(s):\n  - %s",
		len(e.Errors),
		strings.Join(e.Errors, "\n  - "),
	)
}

// Add appends a formatted error message to the validation errors.
func (e *ValidationError) Add(format string, args ...interface{}) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the settings and returns all errors at once. It runs before
// any network call so a bad configuration never reaches the API.
func (s *Settings) Validate() error {
	errs := &ValidationError{}

	if s.Token == "" {
		errs.Add("API token is required (set %s or use --api-token)", EnvAPIToken)
	}

	if s.OutputPath == "" {
		errs.Add("output path cannot be empty")
	}
	if s.TemplatePath == "" {
		errs.Add("template path cannot be empty")
	}

	if len(s.AllowedTypes) == 0 {
		errs.Add("at least one allowed record type is required")
	}
	for i, rt := range s.AllowedTypes {
		if !recordTypes[strings.ToUpper(rt)] {
			errs.Add("allowed_types[%d]: unknown record type %q", i, rt)
		}
	}

	for i, prefix := range s.ExcludePrefixes {
		if prefix == "" {
			errs.Add("exclude_prefixes[%d]: prefix cannot be empty", i)
		}
	}

	if s.Timeout <= 0 {
		errs.Add("timeout must be positive, got %s", s.Timeout)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NormalizeTypes upper-cases the allowed types so filtering can compare
// case-insensitively against API responses.
func (s *Settings) NormalizeTypes() {
	for i, rt := range s.AllowedTypes {
		s.AllowedTypes[i] = strings.ToUpper(rt)
	}
}
