// Package api contains the HTTP delivery layer of the booking API:
// request/response models, handlers for authentication and the four
// resource types, and the mapping from internal errors to HTTP status
// codes. Routing lives in cmd/server; middleware lives in the
// middleware subpackage.
package api
