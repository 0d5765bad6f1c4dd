package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/rules"
	"srs-hq/rulediff/pkg/telemetry/metrics"
	"srs-hq/rulediff/pkg/telemetry/tracing"
)

// EnrichedRule is a rule with its stored configuration attached.
type EnrichedRule struct {
	rules.Rule
	External lookup.Result `json:"external"`
}

// Metrics receives lookup observations. *metrics.Collector implements it.
type Metrics interface {
	LookupStarted()
	LookupFinished(backend, status string, duration time.Duration)
}

// Options configures an Enricher.
type Options struct {
	// Backend labels lookups in metrics and spans ("http" or "store").
	Backend string

	// Limit caps lookups in flight. Zero or less is unbounded.
	Limit int

	Metrics Metrics
	Tracer  *tracing.Tracer
	Logger  *slog.Logger
}

// Enricher runs lookups for batches of rules.
type Enricher struct {
	lookuper lookup.Lookuper
	backend  string
	limit    int
	metrics  Metrics
	tracer   *tracing.Tracer
	logger   *slog.Logger
}

// New creates an Enricher that resolves rules through l.
func New(l lookup.Lookuper, opts Options) *Enricher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	backend := opts.Backend
	if backend == "" {
		backend = "unknown"
	}
	return &Enricher{
		lookuper: l,
		backend:  backend,
		limit:    opts.Limit,
		metrics:  opts.Metrics,
		tracer:   opts.Tracer,
		logger:   logger.With("component", "enrich"),
	}
}

// Enrich looks up every rule with creds and returns one EnrichedRule per
// input rule, in input order. It returns once all lookups have settled.
func (e *Enricher) Enrich(ctx context.Context, list []rules.Rule, creds lookup.Credentials) []EnrichedRule {
	out := make([]EnrichedRule, len(list))
	if len(list) == 0 {
		return out
	}

	ctx, span := e.tracer.Start(ctx, "enrich.partition")
	span.SetAttributes(
		tracing.AttrRuleCount.Int(len(list)),
		tracing.AttrLookupBackend.String(e.backend),
	)
	defer span.End()

	var g errgroup.Group
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, rule := range list {
		g.Go(func() error {
			out[i] = EnrichedRule{Rule: rule, External: e.lookupOne(ctx, rule, creds)}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range out {
		if r.External.Status == lookup.StatusError {
			failed++
		}
	}
	if failed > 0 {
		e.logger.Warn("lookups failed", "rules", len(list), "failed", failed)
	}
	return out
}

// lookupOne resolves a single rule. Errors and panics become the error
// sentinel.
func (e *Enricher) lookupOne(ctx context.Context, rule rules.Rule, creds lookup.Credentials) (result lookup.Result) {
	ctx, span := e.tracer.Start(ctx, "enrich.lookup")
	span.SetAttributes(tracing.AttrRuleName.String(rule.Name))
	defer span.End()

	start := time.Now()
	if e.metrics != nil {
		e.metrics.LookupStarted()
	}

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lookup panicked: %v", r)
			result = lookup.StatusResult(lookup.StatusError)
		}
		status := metrics.LookupData
		switch {
		case err != nil:
			status = metrics.LookupError
			e.logger.Warn("rule lookup failed", "rule", rule.Name, "error", err)
		case result.IsStatus():
			status = metrics.LookupNotConfigured
		}
		if e.metrics != nil {
			e.metrics.LookupFinished(e.backend, status, time.Since(start))
		}
		span.SetAttributes(tracing.AttrLookupStatus.String(status))
		tracing.SetStatus(span, err)
	}()

	result, err = e.lookuper.Lookup(ctx, lookup.Request{
		Name:        rule.Name,
		DisplayName: rule.DisplayName,
		Credentials: creds,
	})
	if err != nil {
		return lookup.StatusResult(lookup.StatusError)
	}
	return normalize(result)
}

// normalize maps collaborator statuses onto the reported vocabulary.
func normalize(r lookup.Result) lookup.Result {
	if r.IsStatus() && r.Status == lookup.StatusNotFound {
		return lookup.StatusResult(lookup.StatusNotConfigured)
	}
	return r
}
