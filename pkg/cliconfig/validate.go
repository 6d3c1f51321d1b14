package cliconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/getmockd/ocpi/pkg/logging"
	"github.com/getmockd/ocpi/pkg/ocpi"
)

// Validate checks the config for values the client cannot work with.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.VersionsURL == "" && len(c.Endpoints) == 0 {
		errs = append(errs, errors.New("either versionsUrl or endpoints must be set"))
	}
	if c.VersionsURL != "" {
		if err := checkURL(c.VersionsURL); err != nil {
			errs = append(errs, fmt.Errorf("versionsUrl: %w", err))
		}
	}
	for _, module := range sortedKeys(c.Endpoints) {
		if _, err := ocpi.ParseModuleID(module); err != nil {
			errs = append(errs, fmt.Errorf("endpoints: %w", err))
			continue
		}
		if err := checkURL(c.Endpoints[module]); err != nil {
			errs = append(errs, fmt.Errorf("endpoints.%s: %w", module, err))
		}
	}
	if len(c.Endpoints) > 0 && c.VersionsURL == "" && c.Version == "" {
		errs = append(errs, errors.New("version is required when endpoints are configured without versionsUrl"))
	}
	if c.Version != "" && !ocpi.Version(c.Version).IsSupported() {
		errs = append(errs, fmt.Errorf("version %q is not supported (supported: %v)", c.Version, ocpi.SupportedVersions))
	}

	if c.CountryCode == "" || c.PartyID == "" {
		errs = append(errs, errors.New("countryCode and partyId are required"))
	} else {
		if len(c.CountryCode) != 2 {
			errs = append(errs, fmt.Errorf("countryCode %q must be 2 characters", c.CountryCode))
		}
		if len(c.PartyID) != 3 {
			errs = append(errs, fmt.Errorf("partyId %q must be 3 characters", c.PartyID))
		}
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout %s must be positive", c.Timeout))
	}
	switch logging.Format(strings.ToLower(c.LogFormat)) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logFormat %q must be text or json", c.LogFormat))
	}

	return errors.Join(errs...)
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http or https URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
