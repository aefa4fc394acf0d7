package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

type messageRepository struct {
	m *Memory
}

var _ interfaces.MessageRepository = &messageRepository{}

// compareMessages orders by CreatedAt desc, then ID desc
func compareMessages(a, b *model.Message) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(string(b.ID), string(a.ID))
}

func (r *messageRepository) GetByCase(_ context.Context, caseID model.CaseID, limit, offset int) ([]*model.Message, int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var owned []*model.Message
	for _, msg := range r.m.messages {
		if msg.CaseID == caseID {
			owned = append(owned, msg)
		}
	}
	slices.SortFunc(owned, compareMessages)

	total := len(owned)
	start, end := model.PageWindow(total, limit, offset)

	page := make([]*model.Message, 0, end-start)
	for _, msg := range owned[start:end] {
		page = append(page, copyMessage(msg))
	}
	return page, total, nil
}

func (r *messageRepository) Get(_ context.Context, id model.MessageID) (*model.Message, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	msg, exists := r.m.messages[id]
	if !exists {
		return nil, nil
	}
	return copyMessage(msg), nil
}

func (r *messageRepository) Add(_ context.Context, msg *model.Message) error {
	if msg == nil {
		return goerr.New("message is nil")
	}

	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.cases[msg.CaseID]; !exists {
		return goerr.New("case of message does not exist",
			goerr.V("case_id", msg.CaseID),
			goerr.V("message_id", msg.ID))
	}
	if _, exists := r.m.messages[msg.ID]; exists {
		return goerr.New("message already exists", goerr.V("message_id", msg.ID))
	}

	r.m.messages[msg.ID] = copyMessage(msg)
	return nil
}

func (r *messageRepository) Delete(_ context.Context, id model.MessageID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	delete(r.m.messages, id)
	return nil
}
