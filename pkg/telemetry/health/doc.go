// Package health serves liveness, readiness and version endpoints for the
// rulediff server.
//
// Liveness only reports that the process is up. Readiness runs every
// registered check concurrently, each bounded by the checker's timeout, and
// answers 503 when any check fails. rulediff registers:
//
//	store     ping of the rule store (store lookup mode with default credentials)
//	lookup    reachability of the remote lookup endpoint (http lookup mode)
//	config    presence of a loaded configuration
package health
