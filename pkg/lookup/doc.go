// Package lookup fetches live configuration for a rule from an external
// store.
//
// A [Lookuper] answers one [Request] (rule name plus store [Credentials])
// with a [Result], which is either ordered field data for the rule or a
// status sentinel such as [StatusNotConfigured]. Implementations in this
// package:
//
//   - [HTTPClient] calls a rulediff server's POST /rule endpoint.
//   - [CachedLookuper] wraps any Lookuper with a TTL cache keyed by the full
//     credential set and rule name. Failed lookups are never cached.
//
// The direct database implementation lives in package store.
//
// # Cache sweeping
//
// Expired cache entries are dropped lazily on read. A [Sweeper] additionally
// purges them on a cron schedule so an idle server does not hold stale rows:
//
//	sweeper := lookup.NewSweeper(cache, "@every 5m")
//	if err := sweeper.Start(ctx); err != nil {
//	    return err
//	}
//	defer sweeper.Stop()
package lookup
