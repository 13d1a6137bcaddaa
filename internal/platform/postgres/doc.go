// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It handles query execution, mapping between domain entities and database
// records, and translation of PostgreSQL error codes into store errors.
//
// Every task query filters on owner_id in addition to the primary key, so a
// row belonging to another user is indistinguishable from a missing one.
//
// The schema lives in the migrations subpackage as embedded goose migrations.
package postgres
