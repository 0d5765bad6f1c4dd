// Package server is the rulediff HTTP service.
//
// Endpoints:
//
//	POST /rule      stored configuration of one rule
//	POST /compare   full comparison (JSON or multipart upload)
//	GET  /health    liveness
//	GET  /ready     readiness (rule store ping)
//	GET  /version   build information
//	GET  /metrics   Prometheus metrics (path configurable)
//
// /rule keeps the request and response shapes browser front ends already
// use: {displayName, dbCreds{username, password, host, port, serviceName}}
// in, the matching row or {"status": "Not Configured in DB"} out.
//
// /compare accepts {oldXml, newXml, dbCreds, skipEnrichment} as JSON, or a
// multipart form with "old" and "new" files and the credential fields. It
// answers with the JSON report, or one partition as CSV with
// ?format=csv&partition=dropped|added|retained.
package server
