// Package middleware holds the echo middleware of the API: CORS, request
// ids, New Relic tracing, bearer token auth, the request-scoped logger,
// request logging, panic recovery and Redis rate limiting.
package middleware
