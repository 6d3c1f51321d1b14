package main

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/getmockd/ocpi/pkg/cli"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/rogpeppe/go-internal/testscript"
)

const partnerToken = "secret"

// TestMain lets testscript run the CLI in-process as the "ocpi" command.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"ocpi": cli.Main,
	}))
}

func TestCLI(t *testing.T) {
	partner := httptest.NewServer(newFakePartner(t))
	t.Cleanup(partner.Close)

	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("PARTNER_URL", partner.URL)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, ".config"))
			env.Setenv("HOME", env.WorkDir)
			return nil
		},
	})
}

// newFakePartner serves a partner offering 2.2.1 and 2.1.1 with one location,
// LOC1 of party NL/ABC.
func newFakePartner(t *testing.T) http.Handler {
	t.Helper()

	reply := func(w http.ResponseWriter, status int, data interface{}, code ocpi.StatusCode, msg string) {
		body, err := ocpi.NewEnvelope(data, code, msg)
		if err != nil {
			t.Errorf("encode envelope: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}
	authorized := func(r *http.Request) bool {
		got := r.Header.Get(ocpi.AuthorizationHeader)
		return got == "Token "+partnerToken ||
			got == "Token "+base64.StdEncoding.EncodeToString([]byte(partnerToken))
	}

	location := ocpi.Location{
		CountryCode: "NL",
		PartyID:     "ABC",
		ID:          "LOC1",
		Name:        "Central Station",
		Address:     "Stationsplein 1",
		City:        "Utrecht",
		Country:     "NLD",
		EVSEs: []ocpi.EVSE{{
			UID:    "E1",
			Status: "AVAILABLE",
			Connectors: []ocpi.Connector{{
				ID: "1", Standard: "IEC_62196_T2", Format: "SOCKET", PowerType: "AC_3_PHASE",
				MaxVoltage: 230, MaxAmperage: 32,
			}},
		}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			reply(w, http.StatusUnauthorized, nil, ocpi.StatusUnknownToken, "Unknown token")
			return
		}
		base := "http://" + r.Host
		switch r.URL.Path {
		case "/ocpi/versions":
			reply(w, http.StatusOK, []ocpi.VersionInfo{
				{Version: ocpi.Version211, URL: base + "/ocpi/2.1.1"},
				{Version: ocpi.Version221, URL: base + "/ocpi/2.2.1"},
			}, ocpi.StatusSuccess, "")
		case "/ocpi/2.2.1":
			reply(w, http.StatusOK, ocpi.VersionDetails{
				Version: ocpi.Version221,
				Endpoints: []ocpi.Endpoint{
					{Identifier: ocpi.ModuleLocations, Role: ocpi.RoleSender, URL: base + "/ocpi/2.2.1/sender/locations"},
					{Identifier: ocpi.ModuleLocations, Role: ocpi.RoleReceiver, URL: base + "/ocpi/2.2.1/locations"},
				},
			}, ocpi.StatusSuccess, "")
		case "/ocpi/2.1.1":
			reply(w, http.StatusOK, ocpi.VersionDetails{
				Version:   ocpi.Version211,
				Endpoints: []ocpi.Endpoint{{Identifier: ocpi.ModuleLocations, URL: base + "/ocpi/2.1.1/locations"}},
			}, ocpi.StatusSuccess, "")
		case "/ocpi/2.2.1/locations/NL/ABC/LOC1", "/ocpi/2.1.1/locations/NL/ABC/LOC1":
			reply(w, http.StatusOK, location, ocpi.StatusSuccess, "")
		case "/ocpi/2.2.1/locations/NL/ABC/LOC1/E1":
			reply(w, http.StatusOK, location.EVSEs[0], ocpi.StatusSuccess, "")
		default:
			reply(w, http.StatusNotFound, nil, ocpi.StatusUnknownLocation, "Unknown location")
		}
	})
	return mux
}
