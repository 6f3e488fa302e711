package repositories

import "context"

// TransactionManager runs units of work inside a database transaction carried
// by the context. Repository calls made with that context join the transaction.
type TransactionManager interface {
	// WithinTx runs fn in a read-write transaction, committing when fn returns nil.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	// WithinSnapshot runs fn in a read-only repeatable-read transaction so all
	// reads observe one consistent snapshot.
	WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}
