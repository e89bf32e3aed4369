// Package store defines the persistence interfaces for the salon booking
// entities along with the shared error taxonomy and transaction helpers.
// Implementations live under internal/platform.
package store
