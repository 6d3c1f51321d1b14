package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := *NewDefault()
	cfg.VersionsURL = "https://partner.example.com/ocpi/versions"
	cfg.CountryCode = "NL"
	cfg.PartyID = "ABC"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "valid discovery config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "valid static endpoints",
			mutate: func(c *Config) {
				c.VersionsURL = ""
				c.Version = "2.1.1"
				c.Endpoints = map[string]string{"locations": "https://partner/ocpi/2.1.1/locations"}
			},
			wantErr: "",
		},
		{
			name:    "no partner",
			mutate:  func(c *Config) { c.VersionsURL = "" },
			wantErr: "either versionsUrl or endpoints must be set",
		},
		{
			name:    "bad versions url",
			mutate:  func(c *Config) { c.VersionsURL = "ftp://partner/versions" },
			wantErr: "must be an http or https URL",
		},
		{
			name: "unknown module",
			mutate: func(c *Config) {
				c.Endpoints = map[string]string{"parking": "https://partner/parking"}
			},
			wantErr: `unknown OCPI module "parking"`,
		},
		{
			name: "static endpoints without version",
			mutate: func(c *Config) {
				c.VersionsURL = ""
				c.Endpoints = map[string]string{"tariffs": "https://partner/tariffs"}
			},
			wantErr: "version is required",
		},
		{
			name:    "unsupported version",
			mutate:  func(c *Config) { c.Version = "3.0" },
			wantErr: `version "3.0" is not supported`,
		},
		{
			name:    "missing party",
			mutate:  func(c *Config) { c.PartyID = "" },
			wantErr: "countryCode and partyId are required",
		},
		{
			name:    "long country code",
			mutate:  func(c *Config) { c.CountryCode = "NLD" },
			wantErr: `countryCode "NLD" must be 2 characters`,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: "timeout 0s must be positive",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: `logFormat "xml" must be text or json`,
		},
		{
			name:    "json log format any case",
			mutate:  func(c *Config) { c.LogFormat = "JSON" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
			}
		})
	}
}

func TestConfig_ValidateReportsAll(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"versionsUrl", "countryCode", "timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestMergeConfig_BasicFields(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &Config{
			VersionsURL: "https://partner/versions",
			Timeout:     5 * time.Second,
		}

		MergeConfig(target, source, SourceLocal)

		if target.VersionsURL != "https://partner/versions" {
			t.Errorf("expected versions URL, got %q", target.VersionsURL)
		}
		if target.Timeout != 5*time.Second {
			t.Errorf("expected timeout 5s, got %s", target.Timeout)
		}
		if target.Sources["timeout"] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources["timeout"])
		}
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()

		MergeConfig(target, &Config{}, SourceLocal)

		if target.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout %s, got %s", DefaultTimeout, target.Timeout)
		}
		if target.Sources["timeout"] != SourceDefault {
			t.Errorf("expected source 'default', got %q", target.Sources["timeout"])
		}
	})

	t.Run("endpoints merge per module", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &Config{Endpoints: map[string]string{
			"locations": "https://global/locations",
			"tariffs":   "https://global/tariffs",
		}}, SourceGlobal)
		MergeConfig(target, &Config{Endpoints: map[string]string{
			"tariffs": "https://local/tariffs",
		}}, SourceLocal)

		if target.Endpoints["locations"] != "https://global/locations" {
			t.Errorf("locations lost: %v", target.Endpoints)
		}
		if target.Endpoints["tariffs"] != "https://local/tariffs" {
			t.Errorf("tariffs not overridden: %v", target.Endpoints)
		}
		if target.Sources["endpoints.tariffs"] != SourceLocal {
			t.Errorf("expected source 'local', got %q", target.Sources["endpoints.tariffs"])
		}
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()

		MergeConfig(target, nil, SourceLocal)

		if target.Timeout != DefaultTimeout {
			t.Errorf("expected timeout unchanged, got %s", target.Timeout)
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvVersionsURL, EnvToken, EnvVersion, EnvCountryCode, EnvPartyID,
		EnvTimeout, EnvLogLevel, EnvLogFormat, EnvLogFile, EnvConfig, EnvEndpointPrefix + "LOCATIONS"} {
		t.Setenv(k, "")
	}
}

func TestLoadAll_Precedence(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Chdir(work)

	writeFile(t, filepath.Join(home, "ocpi", "config.yaml"), `
versionsUrl: https://global/versions
countryCode: DE
partyId: GLB
timeout: 10s
token: global-token
`)
	writeFile(t, filepath.Join(work, ".ocpirc.yaml"), `
countryCode: NL
partyId: ABC
endpoints:
  locations: https://local/locations
`)
	t.Setenv(EnvTimeout, "45")
	t.Setenv(EnvEndpointPrefix+"LOCATIONS", "https://env/locations")

	cfg, err := LoadAll("")
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	checks := []struct {
		key, got, want, source string
	}{
		{"versionsUrl", cfg.VersionsURL, "https://global/versions", SourceGlobal},
		{"token", cfg.Token, "global-token", SourceGlobal},
		{"countryCode", cfg.CountryCode, "NL", SourceLocal},
		{"partyId", cfg.PartyID, "ABC", SourceLocal},
		{"endpoints.locations", cfg.Endpoints["locations"], "https://env/locations", SourceEnv},
		{"logLevel", cfg.LogLevel, DefaultLogLevel, SourceDefault},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.key, c.got, c.want)
		}
		if cfg.Sources[c.key] != c.source {
			t.Errorf("source of %s = %q, want %q", c.key, cfg.Sources[c.key], c.source)
		}
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %s, want 45s", cfg.Timeout)
	}
}

func TestLoadAll_ExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "partner.yaml")
	writeFile(t, path, "versionsUrl: https://file/versions\nversion: \"2.2.1\"\n")

	cfg, err := LoadAll(path)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if cfg.VersionsURL != "https://file/versions" || cfg.Sources["versionsUrl"] != SourceFile {
		t.Errorf("explicit file not applied: %+v", cfg)
	}
	if cfg.Version != "2.2.1" {
		t.Errorf("version = %q", cfg.Version)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}

	if _, err := LoadAll(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestLoadConfigFile_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "versionsUrl: https://x\ntimeout: [1, 2\n")

	_, err := LoadConfigFile(path)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cerr.Path != path {
		t.Errorf("Path = %q", cerr.Path)
	}
	if cerr.Line == 0 {
		t.Errorf("expected a line number in %q", cerr.Error())
	}
}

func TestConfigError_Error(t *testing.T) {
	if got := (&ConfigError{Path: "a.yaml", Line: 3, Message: "bad"}).Error(); got != "a.yaml (line 3): bad" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&ConfigError{Path: "a.yaml", Message: "bad"}).Error(); got != "a.yaml: bad" {
		t.Errorf("Error() = %q", got)
	}
}
