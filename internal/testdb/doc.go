//go:build integration

// Package testdb provides utilities for database integration tests.
//
// Tests run inside a transaction that is rolled back when the test completes,
// so they can run in parallel without interfering with each other and need
// no cleanup.
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        ...
//	    })
//	}
//
// The connection string is read from DATABASE_URL; tests are skipped when it
// is unset. The schema is created from the embedded goose migrations the
// first time a connection is requested.
package testdb
