package interfaces

import (
	"context"

	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

// CaseRepository defines the interface for Case data access
type CaseRepository interface {
	// Get retrieves a case by ID.
	// Returns nil, nil if no case exists with the given ID.
	Get(ctx context.Context, id model.CaseID) (*model.Case, error)

	// Exists reports whether a case with the given ID is stored, without
	// loading its messages
	Exists(ctx context.Context, id model.CaseID) (bool, error)

	// List retrieves all cases in store-defined order
	List(ctx context.Context) ([]*model.Case, error)

	// Add persists a newly constructed case
	Add(ctx context.Context, c *model.Case) error

	// Update overwrites Summary, Description and CustomerID of an existing case.
	// ID and CreatedAt are never changed. Updating an absent case is a no-op.
	Update(ctx context.Context, c *model.Case) error

	// Delete removes the case and every message owned by it in one unit of work.
	// Deleting an absent case is not an error.
	Delete(ctx context.Context, id model.CaseID) error
}
