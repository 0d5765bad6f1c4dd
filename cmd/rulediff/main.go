// rulediff compares two XML rule-definition documents and reports which
// rules were dropped, added and retained, enriched with the stored
// configuration of each rule.
//
// Usage:
//
//	# Compare two exports and print a summary table
//	rulediff compare old.xml new.xml
//
//	# Write dropped_rules.csv, new_rules.csv and matched_rules.csv
//	rulediff compare old.xml new.xml --output-dir ./out
//
//	# Compare a document across two git revisions
//	rulediff compare --repo . --old-ref v1.2.0 --new-ref HEAD --path rules/srs.xml
//
//	# List the rules of one document
//	rulediff extract new.xml --format json
//
//	# Run the HTTP service
//	rulediff serve --config rulediff.yaml
package main

func main() {
	Execute()
}
