package comparator

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"srs-hq/rulediff/pkg/diff"
	"srs-hq/rulediff/pkg/enrich"
	"srs-hq/rulediff/pkg/lookup"
	"srs-hq/rulediff/pkg/report"
	"srs-hq/rulediff/pkg/rules"
	"srs-hq/rulediff/pkg/source"
	"srs-hq/rulediff/pkg/telemetry/logging"
	"srs-hq/rulediff/pkg/telemetry/metrics"
	"srs-hq/rulediff/pkg/telemetry/tracing"
)

// Input is one comparison request.
type Input struct {
	Old source.Document
	New source.Document

	// Credentials address the rule store. Required unless SkipEnrichment.
	Credentials lookup.Credentials

	// SkipEnrichment partitions without looking anything up.
	SkipEnrichment bool
}

// Metrics receives comparison observations. *metrics.Collector implements it.
type Metrics interface {
	RecordComparison(outcome string, duration time.Duration)
	RecordPartitions(dropped, added, retained, changed int)
	RecordShadowed(side string, n int)
	RecordUnnamed(n int)
}

// Options configures a Service.
type Options struct {
	// Sanitize strips foreign markup from descriptions.
	Sanitize bool

	Metrics Metrics
	Tracer  *tracing.Tracer
	Logger  *slog.Logger
}

// Service compares documents.
type Service struct {
	extractor *rules.Extractor
	enricher  *enrich.Enricher
	metrics   Metrics
	tracer    *tracing.Tracer
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Service. enricher may be nil when every comparison skips
// enrichment.
func New(enricher *enrich.Enricher, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: rules.NewExtractor(rules.Options{Sanitize: opts.Sanitize, Logger: logger}),
		enricher:  enricher,
		metrics:   opts.Metrics,
		tracer:    opts.Tracer,
		logger:    logger.With("component", "comparator"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Compare runs one comparison.
func (s *Service) Compare(ctx context.Context, in Input) (rep *report.Report, err error) {
	start := time.Now()
	id := s.newID()

	ctx = logging.WithComparisonID(ctx, id)
	ctx, span := s.tracer.Start(ctx, "comparator.compare")
	span.SetAttributes(tracing.AttrComparisonID.String(id))
	defer span.End()

	logger := logging.FromContext(logging.WithLogger(ctx, s.logger))

	defer func() {
		outcome := metrics.OutcomeSuccess
		switch {
		case IsInputError(err):
			outcome = metrics.OutcomeInputError
			logger.Info("comparison rejected", "error", err)
		case err != nil:
			outcome = metrics.OutcomeError
			logger.Error("comparison failed", "error", err)
		}
		if s.metrics != nil {
			s.metrics.RecordComparison(outcome, time.Since(start))
		}
		tracing.SetStatus(span, err)
	}()

	if err := s.check(in); err != nil {
		return nil, err
	}

	oldRules, oldStats, err := s.extract(ctx, "old", in.Old)
	if err != nil {
		return nil, err
	}
	newRules, newStats, err := s.extract(ctx, "new", in.New)
	if err != nil {
		return nil, err
	}

	_, diffSpan := s.tracer.Start(ctx, "comparator.diff")
	result := diff.Compare(oldRules, newRules)
	summary := result.Summary()
	diffSpan.SetAttributes(
		tracing.AttrDropped.Int(summary.Dropped),
		tracing.AttrAdded.Int(summary.Added),
		tracing.AttrRetained.Int(summary.Retained),
	)
	diffSpan.End()

	rep = &report.Report{
		ID:          id,
		CreatedAt:   s.now().UTC(),
		Sources:     report.Sources{Old: in.Old.Name, New: in.New.Name},
		Summary:     summary,
		Added:       result.Added,
		Changes:     result.Changes,
		Diagnostics: result.Diagnostics,
		Stats:       report.Stats{Old: oldStats, New: newStats},
	}
	if rep.Changes == nil {
		rep.Changes = []diff.Change{}
	}

	if in.SkipEnrichment || s.enricher == nil {
		rep.Dropped = bare(result.Dropped)
		rep.Retained = bare(result.Retained)
	} else {
		rep.Enriched = true
		rep.Dropped = s.enrichPartition(ctx, report.PartitionDropped, result.Dropped, in.Credentials)
		rep.Retained = s.enrichPartition(ctx, report.PartitionRetained, result.Retained, in.Credentials)
	}

	if s.metrics != nil {
		s.metrics.RecordPartitions(summary.Dropped, summary.Added, summary.Retained, summary.Changed)
		s.metrics.RecordShadowed("old", result.Diagnostics.OldShadowed)
		s.metrics.RecordShadowed("new", result.Diagnostics.NewShadowed)
		s.metrics.RecordUnnamed(oldStats.Unnamed + newStats.Unnamed)
	}

	logger.Info("comparison finished",
		"old", in.Old.Name,
		"new", in.New.Name,
		"dropped", summary.Dropped,
		"added", summary.Added,
		"retained", summary.Retained,
		"changed", summary.Changed,
		"enriched", rep.Enriched,
		"duration", time.Since(start),
	)
	if d := result.Diagnostics; d.OldShadowed > 0 || d.NewShadowed > 0 {
		logger.Warn("duplicate rule names resolved",
			"policy", d.Policy,
			"old_shadowed", d.OldShadowed,
			"new_shadowed", d.NewShadowed,
		)
	}

	return rep, nil
}

// check validates preconditions before anything is attempted.
func (s *Service) check(in Input) error {
	if in.Old.IsEmpty() {
		return NewInputError("old", ErrMissingDocument, nil)
	}
	if in.New.IsEmpty() {
		return NewInputError("new", ErrMissingDocument, nil)
	}
	if !in.SkipEnrichment {
		if err := in.Credentials.Validate(); err != nil {
			return NewInputError("credentials", ErrMissingCredentials, err)
		}
	}
	return nil
}

func (s *Service) extract(ctx context.Context, side string, doc source.Document) ([]rules.Rule, rules.Stats, error) {
	_, span := s.tracer.Start(ctx, "comparator.extract")
	span.SetAttributes(
		tracing.AttrDocumentSide.String(side),
		tracing.AttrDocumentBytes.Int(len(doc.Data)),
	)
	defer span.End()

	list, stats, err := s.extractor.Extract(doc.Data)
	if err != nil {
		err = NewInputError(side, ErrUnreadableDocument, err)
		tracing.SetStatus(span, err)
		return nil, rules.Stats{}, err
	}
	span.SetAttributes(tracing.AttrRuleCount.Int(len(list)))
	return list, stats, nil
}

func (s *Service) enrichPartition(ctx context.Context, p report.Partition, list []rules.Rule, creds lookup.Credentials) []enrich.EnrichedRule {
	ctx, span := s.tracer.Start(ctx, "comparator.enrich")
	span.SetAttributes(tracing.AttrPartition.String(string(p)))
	defer span.End()

	return s.enricher.Enrich(ctx, list, creds)
}

// bare wraps rules without looking them up.
func bare(list []rules.Rule) []enrich.EnrichedRule {
	out := make([]enrich.EnrichedRule, len(list))
	for i, r := range list {
		out[i] = enrich.EnrichedRule{Rule: r}
	}
	return out
}
