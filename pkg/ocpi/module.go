package ocpi

import (
	"fmt"
	"strconv"
	"strings"
)

// ModuleID identifies an OCPI module as advertised in a version details document.
type ModuleID string

// Module identifiers.
const (
	ModuleCredentials      ModuleID = "credentials"
	ModuleLocations        ModuleID = "locations"
	ModuleTariffs          ModuleID = "tariffs"
	ModuleSessions         ModuleID = "sessions"
	ModuleCDRs             ModuleID = "cdrs"
	ModuleTokens           ModuleID = "tokens"
	ModuleCommands         ModuleID = "commands"
	ModuleChargingProfiles ModuleID = "chargingprofiles"
)

// Modules lists the modules this client can talk to.
var Modules = []ModuleID{
	ModuleLocations,
	ModuleTariffs,
	ModuleSessions,
	ModuleCDRs,
	ModuleTokens,
	ModuleChargingProfiles,
}

// ParseModuleID parses a module identifier, case-insensitively.
func ParseModuleID(s string) (ModuleID, error) {
	m := ModuleID(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModuleCredentials, ModuleLocations, ModuleTariffs, ModuleSessions,
		ModuleCDRs, ModuleTokens, ModuleCommands, ModuleChargingProfiles:
		return m, nil
	}
	return "", fmt.Errorf("unknown OCPI module %q", s)
}

// Role is the interface role of an endpoint (OCPI 2.2 and later).
type Role string

// Interface roles.
const (
	RoleSender   Role = "SENDER"
	RoleReceiver Role = "RECEIVER"
)

// Version is an OCPI protocol version such as "2.1.1" or "2.2".
type Version string

// Known versions, newest first.
const (
	Version221 Version = "2.2.1"
	Version22  Version = "2.2"
	Version211 Version = "2.1.1"
)

// SupportedVersions is the list of versions this client speaks, newest first.
var SupportedVersions = []Version{Version221, Version22, Version211}

// ParseVersion validates a dotted version string.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if _, err := versionParts(s); err != nil {
		return "", err
	}
	return Version(s), nil
}

// IsSupported reports whether v is one of SupportedVersions.
func (v Version) IsSupported() bool {
	for _, s := range SupportedVersions {
		if s == v {
			return true
		}
	}
	return false
}

// HasRoles reports whether endpoint role information exists in this version.
func (v Version) HasRoles() bool {
	return !v.Less(Version22)
}

// Less compares two versions numerically. Unparseable versions sort first.
func (v Version) Less(other Version) bool {
	a, errA := versionParts(string(v))
	b, errB := versionParts(string(other))
	if errA != nil || errB != nil {
		return errA != nil && errB == nil
	}
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			return x < y
		}
	}
	return false
}

func versionParts(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty OCPI version")
	}
	fields := strings.Split(s, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid OCPI version %q", s)
		}
		parts[i] = n
	}
	return parts, nil
}
