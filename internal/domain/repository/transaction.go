package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle units of work without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error or panics, the transaction is rolled back. Otherwise, it's committed.
	// The transaction is released on every exit path.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances that are bound to a specific transaction.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// ProductRepo returns a ProductRepository bound to the current transaction.
	ProductRepo() ProductRepository
}

// RunInUnit is Execute for work that produces a value. The zero value is
// returned whenever the unit fails.
func RunInUnit[T any](ctx context.Context, tm TransactionManager, fn func(RepositoryFactory) (T, error)) (T, error) {
	var (
		result T
		zero   T
	)

	err := tm.Execute(ctx, func(factory RepositoryFactory) error {
		var fnErr error
		result, fnErr = fn(factory)

		return fnErr
	})
	if err != nil {
		return zero, err
	}

	return result, nil
}
