// Package source reads rule definition documents.
//
// Documents come from the local filesystem, from a git revision of a local
// or remote repository, or from an upload. A Watcher reruns a callback when
// watched documents change, for the CLI's watch mode.
package source
