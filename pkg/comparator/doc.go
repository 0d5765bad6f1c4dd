// Package comparator runs a full comparison of two rule definition
// documents: precondition checks, extraction of both sides, partitioning,
// enrichment of dropped and retained rules, and report assembly.
//
//	svc := comparator.New(enricher, comparator.Options{Sanitize: true})
//	rep, err := svc.Compare(ctx, comparator.Input{
//		Old:         oldDoc,
//		New:         newDoc,
//		Credentials: creds,
//	})
//
// Precondition failures are InputErrors and nothing is attempted. Lookup
// failures never fail a comparison; affected rules carry the error sentinel.
package comparator
