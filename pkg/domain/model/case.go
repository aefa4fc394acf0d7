package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CaseID is a UUID-based identifier for Case
type CaseID string

// NewCaseID generates a new UUID v4 CaseID
func NewCaseID() CaseID {
	return CaseID(uuid.New().String())
}

// ParseCaseID parses a UUID string into a CaseID in canonical form
func ParseCaseID(s string) (CaseID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", goerr.Wrap(ErrInvalidID, "invalid case ID", goerr.V(IDKey, s))
	}
	return CaseID(id.String()), nil
}

func (id CaseID) String() string {
	return string(id)
}

// Case represents a customer support case. Messages is a read convenience
// populated by some repository read paths; it is not authoritative.
type Case struct {
	ID          CaseID
	Summary     string
	Description string
	CustomerID  int64
	CreatedAt   time.Time
	Messages    []*Message
}

// NewCase builds a new case with a fresh ID. CreatedAt is now in UTC at
// microsecond precision, the finest a relational store keeps.
func NewCase(summary, description string, customerID int64, now time.Time) *Case {
	return &Case{
		ID:          NewCaseID(),
		Summary:     summary,
		Description: description,
		CustomerID:  customerID,
		CreatedAt:   now.UTC().Truncate(time.Microsecond),
		Messages:    []*Message{},
	}
}

// AddMessage creates a message owned by this case and appends it to Messages
func (c *Case) AddMessage(content string, now time.Time) *Message {
	msg := NewMessage(c.ID, content, now)
	c.Messages = append(c.Messages, msg)
	return msg
}
