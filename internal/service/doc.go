// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Key components:
//
//   - AccountService: registration, login, token refresh and the current-user view.
//   - TaskService: task CRUD scoped to the authenticated owner.
//
// Services receive their dependencies through constructor injection and run
// every mutating operation inside a store.TxRunner transaction. They depend on
// the store interfaces, never on a concrete database implementation.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected error conditions
//  2. Unexpected errors are wrapped with context using fmt.Errorf and %w
//  3. Callers use errors.Is/errors.As to check for specific error conditions
//  4. The API layer maps service errors to appropriate HTTP status codes
package service
