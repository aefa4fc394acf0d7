package rdb

import (
	"time"

	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

type caseRecord struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)"`
	Summary     string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text;not null"`
	CustomerID  int64           `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	Messages    []messageRecord `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
}

func (caseRecord) TableName() string { return "support_cases" }

type messageRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	CaseID    string    `gorm:"type:varchar(36);not null;index:idx_messages_case_created,priority:1"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_case_created,priority:2"`
}

func (messageRecord) TableName() string { return "messages" }

func toCaseRecord(c *model.Case) *caseRecord {
	return &caseRecord{
		ID:          string(c.ID),
		Summary:     c.Summary,
		Description: c.Description,
		CustomerID:  c.CustomerID,
		CreatedAt:   c.CreatedAt.UTC(),
	}
}

func (r *caseRecord) toModel() *model.Case {
	msgs := make([]*model.Message, 0, len(r.Messages))
	for i := range r.Messages {
		msgs = append(msgs, r.Messages[i].toModel())
	}
	return &model.Case{
		ID:          model.CaseID(r.ID),
		Summary:     r.Summary,
		Description: r.Description,
		CustomerID:  r.CustomerID,
		CreatedAt:   r.CreatedAt.UTC(),
		Messages:    msgs,
	}
}

func toMessageRecord(m *model.Message) *messageRecord {
	return &messageRecord{
		ID:        string(m.ID),
		CaseID:    string(m.CaseID),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (r *messageRecord) toModel() *model.Message {
	return &model.Message{
		ID:        model.MessageID(r.ID),
		CaseID:    model.CaseID(r.CaseID),
		Content:   r.Content,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
