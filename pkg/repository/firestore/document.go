package firestore

import (
	"time"

	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

type caseDoc struct {
	ID          string    `firestore:"ID"`
	Summary     string    `firestore:"Summary"`
	Description string    `firestore:"Description"`
	CustomerID  int64     `firestore:"CustomerID"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
}

type messageDoc struct {
	ID        string    `firestore:"ID"`
	CaseID    string    `firestore:"CaseID"`
	Content   string    `firestore:"Content"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

func toCaseDoc(c *model.Case) *caseDoc {
	return &caseDoc{
		ID:          string(c.ID),
		Summary:     c.Summary,
		Description: c.Description,
		CustomerID:  c.CustomerID,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

func (d *caseDoc) toModel() *model.Case {
	return &model.Case{
		ID:          model.CaseID(d.ID),
		Summary:     d.Summary,
		Description: d.Description,
		CustomerID:  d.CustomerID,
		CreatedAt:   d.CreatedAt.UTC(),
		Messages:    []*model.Message{},
	}
}

func toMessageDoc(m *model.Message) *messageDoc {
	return &messageDoc{
		ID:        string(m.ID),
		CaseID:    string(m.CaseID),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (d *messageDoc) toModel() *model.Message {
	return &model.Message{
		ID:        model.MessageID(d.ID),
		CaseID:    model.CaseID(d.CaseID),
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
