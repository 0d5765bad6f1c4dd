// Package enrich attaches the stored configuration of each rule to the rule.
//
// Every rule gets its own lookup and all lookups of a partition run at once,
// optionally capped. A failed lookup never affects its siblings: the rule
// carries the "Error fetching data" sentinel instead and the batch still
// completes. Results keep the input order.
package enrich
