package interfaces

import (
	"context"

	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

// MessageRepository defines the interface for case-scoped message persistence
type MessageRepository interface {
	// GetByCase retrieves a page of messages for a case and the total number of
	// messages of that case. Messages are in descending CreatedAt order (newest first),
	// ties broken by descending ID.
	GetByCase(ctx context.Context, caseID model.CaseID, limit, offset int) ([]*model.Message, int, error)

	// Get retrieves a message by ID.
	// Returns nil, nil if no message exists with the given ID.
	Get(ctx context.Context, id model.MessageID) (*model.Message, error)

	// Add persists a new message
	Add(ctx context.Context, msg *model.Message) error

	// Delete removes a message by ID. Deleting an absent message is not an error.
	Delete(ctx context.Context, id model.MessageID) error
}
