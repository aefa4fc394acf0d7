package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps cases and messages in process memory. Case and message
// repositories share one lock so that a case delete and its message
// cascade happen as a single step.
type Memory struct {
	mu       sync.RWMutex
	cases    map[model.CaseID]*model.Case
	order    []model.CaseID // preserves insertion order for List
	messages map[model.MessageID]*model.Message

	caseRepo    *caseRepository
	messageRepo *messageRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	m := &Memory{
		cases:    make(map[model.CaseID]*model.Case),
		messages: make(map[model.MessageID]*model.Message),
	}
	m.caseRepo = &caseRepository{m: m}
	m.messageRepo = &messageRepository{m: m}
	return m
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.caseRepo
}

func (m *Memory) Message() interfaces.MessageRepository {
	return m.messageRepo
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// copyCase creates a copy of a case without its message aggregate
func copyCase(c *model.Case) *model.Case {
	return &model.Case{
		ID:          c.ID,
		Summary:     c.Summary,
		Description: c.Description,
		CustomerID:  c.CustomerID,
		CreatedAt:   c.CreatedAt,
		Messages:    []*model.Message{},
	}
}

func copyMessage(msg *model.Message) *model.Message {
	copied := *msg
	return &copied
}
