package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	configPath  string
	versionsURL string
	token       string
	ocpiVersion string
	countryCode string
	partyID     string
	timeout     time.Duration
	jsonOutput  bool
	query       string
	showMetrics bool
	logLevel    string
	logFormat   string
	logFile     string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocpi",
	Short: "ocpi is a command-line client for OCPI partners",
	Long: `ocpi talks to the OCPI endpoints of a roaming partner: locations, tariffs,
sessions, CDRs, tokens and charging profiles.

Endpoints are discovered from the partner's versions URL, or taken from the
endpoints table of the configuration file. Configuration can be provided via
flags, OCPI_* environment variables, ./.ocpirc.yaml or ~/.config/ocpi/config.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Main()
}

// Execute runs the CLI and exits the process.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, FormatError(err))
		return 1
	}
	return 0
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: ./.ocpirc.yaml, ~/.config/ocpi/config.yaml)")
	pf.StringVar(&versionsURL, "versions-url", "", "Partner versions endpoint URL")
	pf.StringVar(&token, "token", "", "Credentials token sent to the partner")
	pf.StringVar(&ocpiVersion, "version", "", "OCPI version to use (default: newest mutual version)")
	pf.StringVar(&countryCode, "country-code", "", "Own ISO-3166 alpha-2 country code")
	pf.StringVar(&partyID, "party-id", "", "Own party id")
	pf.DurationVar(&timeout, "timeout", 0, "Per-operation timeout (default 30s)")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&query, "query", "", "JSONPath expression applied to the result")
	pf.BoolVar(&showMetrics, "metrics", false, "Print operation metrics to stderr after the run")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&logFile, "log-file", "", "Also write logs as JSON to this file")
}
