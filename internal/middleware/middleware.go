// Package middleware holds the Echo middleware of the command API:
// request ids, request-scoped logging, New Relic tracing, the admin
// token check, the code submission rate limit and the global error
// handler.
package middleware
