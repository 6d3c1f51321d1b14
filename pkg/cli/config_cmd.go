package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getmockd/ocpi/pkg/cliconfig"
	"github.com/spf13/cobra"
)

// ConfigOutput is the JSON form of `ocpi config`.
type ConfigOutput struct {
	*cliconfig.Config
	Timeout  string            `json:"timeout"`
	TokenSet bool              `json:"tokenSet"`
	Sources  map[string]string `json:"sources"`
	Valid    bool              `json:"valid"`
	Problems string            `json:"problems,omitempty"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration with source annotations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		out := ConfigOutput{
			Config:   cfg,
			Timeout:  cfg.Timeout.String(),
			TokenSet: cfg.Token != "",
			Sources:  cfg.Sources,
			Valid:    true,
		}
		if verr := cfg.Validate(); verr != nil {
			out.Valid = false
			out.Problems = verr.Error()
		}

		return printResult(out, func() {
			fmt.Println("Effective Configuration:")
			fmt.Println()

			printConfigValue("versionsUrl", cfg.VersionsURL, cfg.Sources["versionsUrl"])
			printConfigValue("version", orNone(cfg.Version), cfg.Sources["version"])
			printConfigValue("token", maskToken(cfg.Token), cfg.Sources["token"])
			printConfigValue("countryCode", cfg.CountryCode, cfg.Sources["countryCode"])
			printConfigValue("partyId", cfg.PartyID, cfg.Sources["partyId"])
			printConfigValue("timeout", cfg.Timeout, cfg.Sources["timeout"])
			printConfigValue("logLevel", cfg.LogLevel, cfg.Sources["logLevel"])
			printConfigValue("logFormat", cfg.LogFormat, cfg.Sources["logFormat"])
			if cfg.LogFile != "" {
				printConfigValue("logFile", cfg.LogFile, cfg.Sources["logFile"])
			}

			if len(cfg.Endpoints) > 0 {
				fmt.Println()
				fmt.Println("Endpoints:")
				modules := make([]string, 0, len(cfg.Endpoints))
				for m := range cfg.Endpoints {
					modules = append(modules, m)
				}
				sort.Strings(modules)
				for _, m := range modules {
					printConfigValue(m, cfg.Endpoints[m], cfg.Sources["endpoints."+m])
				}
			}

			// Show loaded sources
			fmt.Println()
			fmt.Println("Sources loaded:")
			if globalPath, err := cliconfig.FindGlobalConfig(); err == nil && globalPath != "" {
				fmt.Printf("  • %s (global)\n", globalPath)
			}
			if localPath, err := cliconfig.FindLocalConfig(); err == nil && localPath != "" {
				fmt.Printf("  • %s (local)\n", localPath)
			}
			if cfg.ConfigFile != "" {
				fmt.Printf("  • %s (file)\n", cfg.ConfigFile)
			}

			if !out.Valid {
				fmt.Println()
				fmt.Println("Problems:")
				fmt.Println(indent(out.Problems))
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// printConfigValue prints a config value with source annotation.
func printConfigValue(name string, value interface{}, source string) {
	if source == "" {
		source = cliconfig.SourceDefault
	}
	fmt.Printf("  %-18s %v%s\n", name+":", value, formatSource(source))
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault:
		return "  (default)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceGlobal:
		return "  (global config)"
	case cliconfig.SourceLocal:
		return "  (local config)"
	case cliconfig.SourceFile:
		return "  (config file)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	default:
		return ""
	}
}

func maskToken(t string) string {
	switch {
	case t == "":
		return "(none)"
	case len(t) <= 4:
		return "****"
	default:
		return t[:2] + "****" + t[len(t)-2:]
	}
}

func orNone(s string) string {
	if s == "" {
		return "(auto)"
	}
	return s
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
