// Package cliconfig provides configuration types and loading for the ocpi CLI.
package cliconfig

import "time"

// Config represents the complete configuration for the ocpi CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Explicit config file (--config or OCPI_CONFIG)
// 4. Local config file (.ocpirc.yaml in current directory)
// 5. Global config file (~/.config/ocpi/config.yaml)
// 6. Default values (lowest priority)
type Config struct {
	// Partner settings
	VersionsURL string            `yaml:"versionsUrl,omitempty" json:"versionsUrl,omitempty"`
	Endpoints   map[string]string `yaml:"endpoints,omitempty" json:"endpoints,omitempty"`
	Version     string            `yaml:"version,omitempty" json:"version,omitempty"`
	Token       string            `yaml:"token,omitempty" json:"-"`

	// Own party identity
	CountryCode string `yaml:"countryCode,omitempty" json:"countryCode,omitempty"`
	PartyID     string `yaml:"partyId,omitempty" json:"partyId,omitempty"`

	// Timeout bounds every operation, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty" json:"-"`

	// Logging settings
	LogLevel  string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// ConfigFile is an explicit config file to load.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Source tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)
