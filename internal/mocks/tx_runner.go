package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/tasks-api/internal/store"
)

// NoopTxRunner implements store.TxRunner by calling fn directly with a nil
// transaction. Pair it with mock stores whose WithTx ignores the argument.
type NoopTxRunner struct {
	// Err, when set, is returned without calling fn (e.g. a failed BEGIN)
	Err error

	calls atomic.Int64
}

var _ store.TxRunner = (*NoopTxRunner)(nil)

// RunInTransaction implements store.TxRunner.
func (r *NoopTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	r.calls.Add(1)
	if r.Err != nil {
		return r.Err
	}
	return fn(ctx, nil)
}

// Calls returns the number of RunInTransaction invocations.
func (r *NoopTxRunner) Calls() int {
	return int(r.calls.Load())
}
