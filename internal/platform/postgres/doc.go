// Package postgres implements the store interfaces using a PostgreSQL
// database through database/sql with the pgx stdlib driver. Storage
// constraint violations (unique, not-null, check, foreign key) are mapped
// to the store package's sentinel errors and never escape raw.
package postgres
