package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MessageID is a UUID-based identifier for Message
type MessageID string

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// ParseMessageID parses a UUID string into a MessageID in canonical form
func ParseMessageID(s string) (MessageID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidID, "invalid message ID", goerr.V(IDKey, s))
	}
	return MessageID(id.String()), nil
}

func (id MessageID) String() string {
	return string(id)
}

// Message is a single communication within a case. Content never changes after creation.
type Message struct {
	ID        MessageID
	CaseID    CaseID
	Content   string
	CreatedAt time.Time
}

// NewMessage builds a message bound to caseID. Callers must have checked that the case exists.
func NewMessage(caseID CaseID, content string, now time.Time) *Message {
	return &Message{
		ID:        NewMessageID(),
		CaseID:    caseID,
		Content:   content,
		CreatedAt: now.UTC().Truncate(time.Microsecond),
	}
}
