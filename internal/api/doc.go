// Package api serves the chart pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz         liveness and build version
//	POST /v1/charts       GEDCOM body, options as query parameters → chart JSON
//	POST /v1/individuals  GEDCOM body → individuals list
//	POST /v1/tree         GEDCOM body → pedigree as DOT or SVG
//
// Errors are JSON objects {"error", "code", "request_id"}; the code is one of
// the [errors.Code] values and selects the HTTP status.
package api
