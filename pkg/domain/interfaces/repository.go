package interfaces

import "context"

// Repository defines the interface for data persistence
type Repository interface {
	Case() CaseRepository
	Message() MessageRepository

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	Close() error
}
