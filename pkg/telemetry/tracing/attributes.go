package tracing

import "go.opentelemetry.io/otel/attribute"

// Attribute keys used on rulediff spans.
const (
	AttrComparisonID  = attribute.Key("rulediff.comparison_id")
	AttrDocumentSide  = attribute.Key("rulediff.document.side")
	AttrDocumentBytes = attribute.Key("rulediff.document.bytes")
	AttrRuleName      = attribute.Key("rulediff.rule.name")
	AttrRuleCount     = attribute.Key("rulediff.rule.count")
	AttrPartition     = attribute.Key("rulediff.partition")
	AttrLookupBackend = attribute.Key("rulediff.lookup.backend")
	AttrLookupStatus  = attribute.Key("rulediff.lookup.status")
	AttrDropped       = attribute.Key("rulediff.dropped")
	AttrAdded         = attribute.Key("rulediff.added")
	AttrRetained      = attribute.Key("rulediff.retained")
)
