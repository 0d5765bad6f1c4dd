// Package rules locates rule records in a parsed rule-definition document and
// turns each one into a [Rule] with a synthesized description.
//
// # Locating Records
//
// [Locate] walks the tree depth-first and collects every value of a field
// named "rule", wherever it is nested. A container holding exactly one rule
// yields one record; a container holding several yields all of them.
//
// # Descriptions
//
// [Synthesize] builds a single markup string from a record's documentation:
// paragraph texts, then preformatted blocks, then the set_name row of the
// first attribute table, prefixed by the display name when one exists.
//
// The result is markup. Callers rendering descriptions from untrusted
// documents should enable sanitising (see [Options]).
//
// # Usage
//
//	extractor := rules.NewExtractor(rules.Options{Sanitize: true})
//	extracted, stats, err := extractor.Extract(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d rules (%d unnamed records skipped)\n", len(extracted), stats.Unnamed)
package rules
