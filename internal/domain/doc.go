// Package domain contains the core business entities of the salon booking
// system (User, Service, Appointment, Notification) together with their
// field-level validation rules. Validation here is pure and stateless;
// anything that needs storage access (existence checks, uniqueness
// pre-checks) lives in the service layer.
package domain
