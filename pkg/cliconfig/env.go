package cliconfig

import (
	"os"
	"strings"
	"time"

	"github.com/getmockd/ocpi/pkg/ocpi"
)

// Environment variable names
const (
	EnvVersionsURL = "OCPI_VERSIONS_URL"
	EnvToken       = "OCPI_TOKEN"
	EnvVersion     = "OCPI_VERSION"
	EnvCountryCode = "OCPI_COUNTRY_CODE"
	EnvPartyID     = "OCPI_PARTY_ID"
	EnvTimeout     = "OCPI_TIMEOUT"
	EnvLogLevel    = "OCPI_LOG_LEVEL"
	EnvLogFormat   = "OCPI_LOG_FORMAT"
	EnvLogFile     = "OCPI_LOG_FILE"
	EnvConfig      = "OCPI_CONFIG"

	// EnvEndpointPrefix is followed by the upper-case module id,
	// e.g. OCPI_ENDPOINT_LOCATIONS.
	EnvEndpointPrefix = "OCPI_ENDPOINT_"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	setString := func(env, key string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			cfg.Sources[key] = SourceEnv
		}
	}
	setString(EnvVersionsURL, "versionsUrl", &cfg.VersionsURL)
	setString(EnvToken, "token", &cfg.Token)
	setString(EnvVersion, "version", &cfg.Version)
	setString(EnvCountryCode, "countryCode", &cfg.CountryCode)
	setString(EnvPartyID, "partyId", &cfg.PartyID)
	setString(EnvLogLevel, "logLevel", &cfg.LogLevel)
	setString(EnvLogFormat, "logFormat", &cfg.LogFormat)
	setString(EnvLogFile, "logFile", &cfg.LogFile)
	setString(EnvConfig, "configFile", &cfg.ConfigFile)

	// OCPI_TIMEOUT accepts a duration ("45s") or whole seconds ("45")
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, ok := parseTimeout(v); ok {
			cfg.Timeout = d
			cfg.Sources["timeout"] = SourceEnv
		}
	}

	for _, m := range ocpi.Modules {
		if v := os.Getenv(EnvEndpointPrefix + strings.ToUpper(string(m))); v != "" {
			if cfg.Endpoints == nil {
				cfg.Endpoints = make(map[string]string)
			}
			cfg.Endpoints[string(m)] = v
			cfg.Sources["endpoints."+string(m)] = SourceEnv
		}
	}
}

func parseTimeout(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if d, err := time.ParseDuration(v + "s"); err == nil {
		return d, true
	}
	return 0, false
}
