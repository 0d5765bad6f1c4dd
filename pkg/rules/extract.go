package rules

import (
	"log/slog"

	"srs-hq/rulediff/pkg/markup"
)

// Options configures an Extractor.
type Options struct {
	// Sanitize passes every description through a Sanitizer.
	Sanitize bool

	// Logger receives extraction diagnostics (defaults to slog.Default()).
	Logger *slog.Logger
}

// Extractor turns documents into rules.
type Extractor struct {
	sanitizer *Sanitizer
	logger    *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Extractor{logger: logger.With("component", "rules.extractor")}
	if opts.Sanitize {
		e.sanitizer = NewSanitizer()
	}
	return e
}

// Extract parses data and returns its rules in document order.
// Only a document that cannot be tokenised returns an error.
func (e *Extractor) Extract(data []byte) ([]Rule, Stats, error) {
	tree, err := markup.Parse(data)
	if err != nil {
		return nil, Stats{}, err
	}
	out, stats := e.ExtractTree(tree)
	return out, stats, nil
}

// ExtractTree returns the rules of an already parsed document.
// Records without a name cannot be compared and are skipped.
func (e *Extractor) ExtractTree(tree *markup.Node) ([]Rule, Stats) {
	records := Locate(tree)
	stats := Stats{Records: len(records)}

	out := make([]Rule, 0, len(records))
	for i, record := range records {
		name := fieldText(record, nameKey)
		if name == "" {
			stats.Unnamed++
			e.logger.Debug("skipping rule record without name", "index", i)
			continue
		}

		description := Synthesize(record)
		if e.sanitizer != nil {
			description = e.sanitizer.Sanitize(description)
		}

		out = append(out, Rule{
			Name:        name,
			DisplayName: fieldText(record, displayNameKey),
			Description: description,
		})
	}
	stats.Extracted = len(out)

	if stats.Unnamed > 0 {
		e.logger.Warn("rule records without name skipped",
			"records", stats.Records,
			"unnamed", stats.Unnamed,
		)
	}

	return out, stats
}

// Extract parses data with default options.
func Extract(data []byte) ([]Rule, error) {
	out, _, err := NewExtractor(Options{}).Extract(data)
	return out, err
}
