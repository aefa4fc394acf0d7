package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
)

type MessageUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewMessageUseCase(repo interfaces.Repository, now func() time.Time) *MessageUseCase {
	if now == nil {
		now = time.Now
	}
	return &MessageUseCase{
		repo: repo,
		now:  now,
	}
}

// AddMessage appends a message to an existing case. Nothing is stored
// when the case is missing.
func (uc *MessageUseCase) AddMessage(ctx context.Context, caseID model.CaseID, content string) (*model.Message, error) {
	exists, err := uc.repo.Case().Exists(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to check case", goerr.V(CaseIDKey, caseID))
	}
	if !exists {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	msg := model.NewMessage(caseID, content, uc.now())
	if err := uc.repo.Message().Add(ctx, msg); err != nil {
		return nil, goerr.Wrap(err, "failed to add message",
			goerr.V(CaseIDKey, caseID),
			goerr.V(MessageIDKey, msg.ID))
	}

	logging.From(ctx).Info("message added", "case_id", caseID, "message_id", msg.ID)
	return msg, nil
}

// GetCaseMessages returns one page of the case's messages, newest first,
// and the total number of messages in the case. An unknown case yields an
// empty page rather than an error. limit and offset are used as given.
func (uc *MessageUseCase) GetCaseMessages(ctx context.Context, caseID model.CaseID, limit, offset int) ([]*model.Message, int, error) {
	exists, err := uc.repo.Case().Exists(ctx, caseID)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to check case", goerr.V(CaseIDKey, caseID))
	}
	if !exists {
		return []*model.Message{}, 0, nil
	}

	msgs, total, err := uc.repo.Message().GetByCase(ctx, caseID, limit, offset)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to get case messages",
			goerr.V(CaseIDKey, caseID),
			goerr.V(LimitKey, limit),
			goerr.V(OffsetKey, offset))
	}
	if msgs == nil {
		msgs = []*model.Message{}
	}
	return msgs, total, nil
}

// DeleteMessage removes a message that belongs to caseID. It returns false
// when the message does not exist or is owned by another case.
func (uc *MessageUseCase) DeleteMessage(ctx context.Context, caseID model.CaseID, messageID model.MessageID) (bool, error) {
	msg, err := uc.repo.Message().Get(ctx, messageID)
	if err != nil {
		return false, goerr.Wrap(err, "failed to get message",
			goerr.V(CaseIDKey, caseID),
			goerr.V(MessageIDKey, messageID))
	}
	if msg == nil || msg.CaseID != caseID {
		return false, nil
	}

	if err := uc.repo.Message().Delete(ctx, messageID); err != nil {
		return false, goerr.Wrap(err, "failed to delete message",
			goerr.V(CaseIDKey, caseID),
			goerr.V(MessageIDKey, messageID))
	}

	logging.From(ctx).Info("message deleted", "case_id", caseID, "message_id", messageID)
	return true, nil
}
