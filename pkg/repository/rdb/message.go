package rdb

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

var _ interfaces.MessageRepository = &messageRepository{}

func (r *messageRepository) GetByCase(ctx context.Context, caseID model.CaseID, limit, offset int) ([]*model.Message, int, error) {
	var total int64
	var recs []messageRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&messageRecord{}).Where("case_id = ?", string(caseID)).Count(&total).Error; err != nil {
			return goerr.Wrap(err, "failed to count messages")
		}
		if limit <= 0 || int64(offset) >= total {
			return nil
		}
		return tx.Where("case_id = ?", string(caseID)).
			Order("created_at DESC").
			Order("id DESC").
			Limit(limit).
			Offset(max(offset, 0)).
			Find(&recs).Error
	})
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to get messages of case",
			goerr.V("case_id", caseID),
			goerr.V("limit", limit),
			goerr.V("offset", offset))
	}

	msgs := make([]*model.Message, 0, len(recs))
	for i := range recs {
		msgs = append(msgs, recs[i].toModel())
	}
	return msgs, int(total), nil
}

func (r *messageRepository) Get(ctx context.Context, id model.MessageID) (*model.Message, error) {
	var rec messageRecord
	if err := r.db.WithContext(ctx).Where("id = ?", string(id)).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get message", goerr.V("message_id", id))
	}
	return rec.toModel(), nil
}

func (r *messageRepository) Add(ctx context.Context, msg *model.Message) error {
	if msg == nil {
		return goerr.New("message is nil")
	}
	if err := r.db.WithContext(ctx).Create(toMessageRecord(msg)).Error; err != nil {
		return goerr.Wrap(err, "failed to add message",
			goerr.V("case_id", msg.CaseID),
			goerr.V("message_id", msg.ID))
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id model.MessageID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", string(id)).Delete(&messageRecord{}).Error; err != nil {
		return goerr.Wrap(err, "failed to delete message", goerr.V("message_id", id))
	}
	return nil
}
