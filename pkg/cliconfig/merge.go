package cliconfig

import "sort"

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString := func(key string, dst *string, v string) {
		if v != "" {
			*dst = v
			target.Sources[key] = sourceType
		}
	}
	mergeString("versionsUrl", &target.VersionsURL, source.VersionsURL)
	mergeString("version", &target.Version, source.Version)
	mergeString("token", &target.Token, source.Token)
	mergeString("countryCode", &target.CountryCode, source.CountryCode)
	mergeString("partyId", &target.PartyID, source.PartyID)
	mergeString("logLevel", &target.LogLevel, source.LogLevel)
	mergeString("logFormat", &target.LogFormat, source.LogFormat)
	mergeString("logFile", &target.LogFile, source.LogFile)
	mergeString("configFile", &target.ConfigFile, source.ConfigFile)

	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}

	// Endpoints merge per module so a local file can override a single URL.
	for _, module := range sortedKeys(source.Endpoints) {
		if target.Endpoints == nil {
			target.Endpoints = make(map[string]string)
		}
		target.Endpoints[module] = source.Endpoints[module]
		target.Sources["endpoints."+module] = sourceType
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
