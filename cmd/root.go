// Package cmd provides the CLI for the DNS navigation page generator.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kreigan/dns-navpage/internal/cloudflare"
	"github.com/kreigan/dns-navpage/internal/config"
	"github.com/kreigan/dns-navpage/internal/logger"
	"github.com/kreigan/dns-navpage/internal/navpage"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var dryRun bool

var rootCmd = &cobra.Command{
	Use:   "dns-navpage",
	Short: "Generate a static navigation page from Cloudflare DNS records",
	Long: `Generate a static HTML navigation page from the DNS records of a
Cloudflare account.

The tool lists every zone the credential can see, fetches each zone's DNS
records, keeps website-like records (A, CNAME, AAAA by default) whose names
do not start with an excluded prefix, groups the survivors by zone, and
renders them into an HTML template. The result is one static page,
overwritten in full on every run; on any failure the previous page is left
untouched.

Credentials come from the CF_API_TOKEN and CF_EMAIL environment variables
unless overridden by flags. Filtering and rendering options can be set in an
optional YAML settings file (see --config).`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runGenerate,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().String("api-token", "", "Cloudflare API token (default from CF_API_TOKEN)")
	rootCmd.Flags().String("api-email", "", "Cloudflare account email for legacy auth (default from CF_EMAIL)")
	rootCmd.Flags().StringP("config", "c", "", "YAML settings file with filter and display options")
	rootCmd.Flags().StringP("output", "o", "", "Output HTML file path (default index.html)")
	rootCmd.Flags().String("template", "", "HTML template file path (default template.html)")
	rootCmd.Flags().Duration("timeout", 0, "Wall-clock bound per API call (default 30s)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Fetch and render but do not write the output file")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose/debug output")
	rootCmd.Flags().Bool("json", false, "Output in JSON format (structured logging)")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return fmt.Errorf("failed to get no-color flag: %w", err)
	}

	// Initialize logger
	log := logger.New(logger.Options{
		Verbose: verbose,
		JSON:    jsonOutput,
		NoColor: noColor,
	})
	log.SetDryRun(dryRun)

	settings, err := buildSettings(cmd)
	if err != nil {
		return err
	}

	log.Debug("API token: %s", logger.MaskSecret(settings.Token))
	log.Debug("Output: %s, template: %s", settings.OutputPath, settings.TemplatePath)
	log.Debug("Allowed types: %v, exclude prefixes: %v", settings.AllowedTypes, settings.ExcludePrefixes)

	// Validate before any network call
	settings.NormalizeTypes()
	if err := settings.Validate(); err != nil {
		return err
	}

	// Create Cloudflare client
	client := cloudflare.NewClient(
		settings.Token, settings.Email, log,
		cloudflare.WithTimeout(settings.Timeout),
	)

	// Build the page
	builder := navpage.NewBuilder(client, settings, log)
	result, err := builder.Build(cmd.Context(), navpage.BuildOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	printResult(log, result, dryRun, jsonOutput)
	return nil
}

// buildSettings layers defaults, the optional settings file, and flags.
func buildSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings := config.Default()

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configFile != "" {
		if err := settings.LoadFile(configFile); err != nil {
			return nil, err
		}
	}

	apiToken, err := cmd.Flags().GetString("api-token")
	if err != nil {
		return nil, fmt.Errorf("failed to get api-token flag: %w", err)
	}
	if apiToken != "" {
		settings.Token = apiToken
	}

	apiEmail, err := cmd.Flags().GetString("api-email")
	if err != nil {
		return nil, fmt.Errorf("failed to get api-email flag: %w", err)
	}
	if apiEmail != "" {
		settings.Email = apiEmail
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, fmt.Errorf("failed to get output flag: %w", err)
	}
	if output != "" {
		settings.OutputPath = output
	}

	templatePath, err := cmd.Flags().GetString("template")
	if err != nil {
		return nil, fmt.Errorf("failed to get template flag: %w", err)
	}
	if templatePath != "" {
		settings.TemplatePath = templatePath
	}

	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, fmt.Errorf("failed to get timeout flag: %w", err)
		}
		settings.Timeout = timeout
	}

	return settings, nil
}

func printResult(log *logger.Logger, result *navpage.Result, isDryRun, jsonOutput bool) {
	if jsonOutput {
		log.InfoWithData("Page generated", map[string]interface{}{
			"zones":          result.Zones,
			"recordsFetched": result.RecordsFetched,
			"linksKept":      result.LinksKept,
			"outputPath":     result.OutputPath,
			"written":        result.Written,
		})
		return
	}

	prefix := ""
	if isDryRun {
		prefix = "[DRY RUN] "
	}

	fmt.Printf("\n%sResults:\n", prefix)
	fmt.Printf("  Zones:           %d\n", result.Zones)
	fmt.Printf("  Records fetched: %d\n", result.RecordsFetched)
	fmt.Printf("  Links kept:      %d\n", result.LinksKept)
	if result.Written {
		fmt.Printf("  Output:          %s\n", result.OutputPath)
	} else {
		fmt.Printf("  Output:          (not written)\n")
	}
}
