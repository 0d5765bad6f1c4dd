// Package middleware provides the HTTP middleware chain of the rulediff
// server.
//
// Order, outermost first:
//
//	Recovery -> RequestID -> Tracing -> Logging -> Metrics -> CORS -> BodyLimit -> mux
//
// Recovery turns handler panics into 500 responses. RequestID accepts or
// assigns X-Request-ID and stores it for loggers. Tracing continues the
// caller's W3C trace. Logging writes one line per request. Metrics records
// request counts and latency per route. CORS answers preflight requests for
// browser front ends. BodyLimit caps request bodies, uploads included.
package middleware
