package main

import (
	"context"
	"fmt"

	"srs-hq/rulediff/pkg/cli"
	"srs-hq/rulediff/pkg/comparator"
	"srs-hq/rulediff/pkg/config"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/store"
	"srs-hq/rulediff/pkg/telemetry"
)

// Lookup modes.
const (
	modeHTTP  = "http"
	modeStore = "store"
)

func storeConfig(c *config.StoreConfig) *store.Config {
	return &store.Config{
		Driver:          c.Driver,
		Path:            c.Path,
		Table:           c.Table,
		NameColumn:      c.NameColumn,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		QueryTimeout:    c.QueryTimeout,
	}
}

func credentials(c *config.CredentialsConfig) lookup.Credentials {
	return lookup.Credentials{
		Username:    c.Username,
		Password:    c.Password,
		Host:        c.Host,
		Port:        c.Port,
		ServiceName: c.ServiceName,
	}
}

// backend is a configured lookup chain and what must be released after use.
type backend struct {
	lookuper lookup.Lookuper
	name     string
	store    *store.Store
	sweeper  *lookup.Sweeper
}

// newBackend builds the lookup chain for mode: the store or an HTTP client,
// wrapped in a swept cache when caching is enabled.
func newBackend(ctx context.Context, cfg *config.Config, tel *telemetry.Telemetry, mode string) (*backend, error) {
	logger := tel.Logger()
	b := &backend{name: mode}

	switch mode {
	case modeStore:
		st, err := store.New(storeConfig(&cfg.Store), logger)
		if err != nil {
			return nil, cli.NewConfigError("store", err.Error())
		}
		b.store = st
		b.lookuper = st
	case modeHTTP:
		b.lookuper = lookup.NewHTTPClient(cfg.Lookup.Endpoint, cfg.Lookup.Timeout, logger)
	default:
		return nil, cli.NewConfigError("lookup.mode", fmt.Sprintf("unknown lookup mode %q", mode))
	}

	if cfg.Lookup.Cache.Enabled {
		cache := lookup.NewCachedLookuper(b.lookuper, cfg.Lookup.Cache.TTL, logger).WithMetrics(tel.Metrics())
		b.sweeper = lookup.NewSweeper(cache, cfg.Lookup.Cache.SweepSchedule)
		if err := b.sweeper.Start(ctx); err != nil {
			b.Close()
			return nil, cli.NewConfigError("lookup.cache.sweep_schedule", err.Error())
		}
		b.lookuper = cache
	}
	return b, nil
}

// Close stops the sweeper and closes the store.
func (b *backend) Close() {
	if b.sweeper != nil {
		b.sweeper.Stop()
	}
	if b.store != nil {
		_ = b.store.Close()
	}
}

// newComparator builds a comparison service. b may be nil when enrichment
// is disabled. lookupMetrics defaults to the telemetry collector.
func newComparator(cfg *config.Config, tel *telemetry.Telemetry, b *backend, lookupMetrics enrich.Metrics) *comparator.Service {
	if lookupMetrics == nil {
		lookupMetrics = tel.Metrics()
	}

	var enricher *enrich.Enricher
	if b != nil {
		enricher = enrich.New(b.lookuper, enrich.Options{
			Backend: b.name,
			Limit:   cfg.Lookup.MaxConcurrency,
			Metrics: lookupMetrics,
			Tracer:  tel.Tracer(),
			Logger:  tel.Logger(),
		})
	}

	return comparator.New(enricher, comparator.Options{
		Sanitize: cfg.Rules.SanitizeDescriptions,
		Metrics:  tel.Metrics(),
		Tracer:   tel.Tracer(),
		Logger:   tel.Logger(),
	})
}
