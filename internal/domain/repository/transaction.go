package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// The approval of a join request needs the resident upsert, the household
// member append and the request state transition to apply all-or-nothing;
// this interface lets the usecase layer express that without depending on a
// specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside an Execute callback shares one
// database connection.
type RepositoryFactory interface {
	// NewResidentRepository returns a ResidentRepository bound to the current transaction.
	NewResidentRepository() ResidentRepository

	// NewHouseholdRepository returns a HouseholdRepository bound to the current transaction.
	NewHouseholdRepository() HouseholdRepository

	// NewJoinRequestRepository returns a JoinRequestRepository bound to the current transaction.
	NewJoinRequestRepository() JoinRequestRepository

	// NewResidencyEventRepository returns a ResidencyEventRepository bound to the current transaction.
	NewResidencyEventRepository() ResidencyEventRepository
}
