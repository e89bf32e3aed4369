// Package service contains the application-specific use cases of the
// booking API. It orchestrates domain objects and the repositories
// defined in internal/store to fulfill application features: account
// management, the salon service catalog, appointment booking, and
// notification scheduling and dispatch.
//
// Services receive dependencies through constructor injection and apply
// transactional boundaries with store.RunInTransaction when an operation
// spans multiple statements. They translate store-level errors into
// service-level sentinels that the API layer maps to HTTP status codes.
package service
