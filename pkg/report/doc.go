// Package report holds the outcome of a comparison and renders it.
//
// A Report has three partitions: dropped rules (only in the old document),
// added rules (only in the new one) and retained rules (in both, with the new
// description). Dropped and retained rules carry their stored configuration.
//
// Renderings:
//
//	CSV    one file per partition, every field quoted
//	JSON   the whole report
//	text   a terminal summary with one table per partition
package report
