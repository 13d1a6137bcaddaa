// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Every task operation takes the owner ID
// as a required argument so that no query can bypass ownership scoping.
package store
