package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/getmockd/ocpi/pkg/cliconfig"
	"github.com/getmockd/ocpi/pkg/client"
	"github.com/getmockd/ocpi/pkg/endpoint"
	"github.com/getmockd/ocpi/pkg/logging"
	"github.com/getmockd/ocpi/pkg/metrics"
	"github.com/getmockd/ocpi/pkg/observer"
	"github.com/getmockd/ocpi/pkg/ocpi"
	"github.com/getmockd/ocpi/pkg/transport"
	"github.com/spf13/cobra"
)

// partner bundles everything a command needs to talk to the configured partner.
type partner struct {
	cfg       *cliconfig.Config
	logger    *slog.Logger
	closeLog  func() error
	registry  *metrics.Registry
	bus       *observer.Bus
	client    *client.Client
	discovery *endpoint.DiscoveryResolver // nil when static endpoints are configured
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// loadConfig resolves the configuration and applies the flags on top.
func loadConfig(cmd *cobra.Command) (*cliconfig.Config, error) {
	cfg, err := cliconfig.LoadAll(configPath)
	if err != nil {
		return nil, err
	}

	flagCfg := &cliconfig.Config{}
	if changed(cmd, "versions-url") {
		flagCfg.VersionsURL = versionsURL
	}
	if changed(cmd, "token") {
		flagCfg.Token = token
	}
	if changed(cmd, "version") {
		flagCfg.Version = ocpiVersion
	}
	if changed(cmd, "country-code") {
		flagCfg.CountryCode = countryCode
	}
	if changed(cmd, "party-id") {
		flagCfg.PartyID = partyID
	}
	if changed(cmd, "timeout") {
		flagCfg.Timeout = timeout
	}
	if changed(cmd, "log-level") {
		flagCfg.LogLevel = logLevel
	}
	if changed(cmd, "log-format") {
		flagCfg.LogFormat = logFormat
	}
	if changed(cmd, "log-file") {
		flagCfg.LogFile = logFile
	}
	cliconfig.MergeConfig(cfg, flagCfg, cliconfig.SourceFlag)
	return cfg, nil
}

// openLog opens the run's logger; swapped in tests.
var openLog = logging.Open

// openPartner builds the client stack. Commands that address party-scoped
// resources pass validate=true. The log file is closed again when it fails.
func openPartner(cmd *cobra.Command, validate bool) (_ *partner, err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration:\n%w", err)
		}
	}

	logger, closeLog, err := openLog(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = closeLog()
		}
	}()

	p := &partner{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		registry: metrics.NewRegistry(),
		bus:      observer.New(observer.WithLogger(logger)),
	}
	if err := observer.NewLogObserver(logger).Attach(p.bus, "log", "**"); err != nil {
		return nil, err
	}
	if err := metrics.NewDurationObserver(p.registry).Attach(p.bus, "duration"); err != nil {
		return nil, err
	}

	tr := transport.NewHTTP(nil)
	var resolver endpoint.Resolver
	if len(cfg.Endpoints) > 0 {
		table := make(map[ocpi.ModuleID]string, len(cfg.Endpoints))
		for name, u := range cfg.Endpoints {
			m, err := ocpi.ParseModuleID(name)
			if err != nil {
				return nil, err
			}
			table[m] = u
		}
		resolver = endpoint.NewStaticResolver(ocpi.Version(cfg.Version), table)
	} else {
		p.discovery = endpoint.NewDiscoveryResolver(cfg.VersionsURL, tr,
			endpoint.WithToken(cfg.Token),
			endpoint.WithPreferredVersion(ocpi.Version(cfg.Version)),
			endpoint.WithLogger(logger),
		)
		resolver = p.discovery
	}

	p.client = client.New(resolver,
		client.WithTransport(tr),
		client.WithBus(p.bus),
		client.WithCounters(metrics.NewOperationCounters(p.registry)),
		client.WithLogger(logger),
		client.WithTimeout(cfg.Timeout),
		client.WithToken(cfg.Token),
		client.WithParty(cfg.CountryCode, cfg.PartyID),
	)
	return p, nil
}

// Close flushes diagnostics. It is safe to call on a nil partner.
func (p *partner) Close() {
	if p == nil {
		return
	}
	_ = p.bus.Close()
	if showMetrics {
		_, _ = p.registry.WriteTo(os.Stderr)
	}
	_ = p.closeLog()
}
