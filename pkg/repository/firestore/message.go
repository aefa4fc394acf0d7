package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type messageRepository struct {
	client *firestore.Client
	cols   *collections
}

var _ interfaces.MessageRepository = &messageRepository{}

func (r *messageRepository) doc(id model.MessageID) *firestore.DocumentRef {
	return r.client.Collection(r.cols.messages()).Doc(string(id))
}

func (r *messageRepository) countByCase(ctx context.Context, q firestore.Query) (int, error) {
	result, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count messages")
	}

	v, ok := result["total"].(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count result", goerr.V("result", result))
	}
	return int(v.GetIntegerValue()), nil
}

func (r *messageRepository) GetByCase(ctx context.Context, caseID model.CaseID, limit, offset int) ([]*model.Message, int, error) {
	q := r.client.Collection(r.cols.messages()).Where("CaseID", "==", string(caseID))

	total, err := r.countByCase(ctx, q)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to get messages of case", goerr.V("case_id", caseID))
	}

	msgs := []*model.Message{}
	if limit <= 0 || offset >= total {
		return msgs, total, nil
	}

	iter := q.OrderBy("CreatedAt", firestore.Desc).
		OrderBy("ID", firestore.Desc).
		Offset(max(offset, 0)).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to iterate messages",
				goerr.V("case_id", caseID),
				goerr.V("limit", limit),
				goerr.V("offset", offset))
		}

		var d messageDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, 0, goerr.Wrap(err, "failed to decode message", goerr.V("doc_id", snap.Ref.ID))
		}
		msgs = append(msgs, d.toModel())
	}

	return msgs, total, nil
}

func (r *messageRepository) Get(ctx context.Context, id model.MessageID) (*model.Message, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get message", goerr.V("message_id", id))
	}

	var d messageDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode message", goerr.V("message_id", id))
	}
	return d.toModel(), nil
}

// Add stores the message only if its case still exists
func (r *messageRepository) Add(ctx context.Context, msg *model.Message) error {
	if msg == nil {
		return goerr.New("message is nil")
	}

	caseRef := r.client.Collection(r.cols.cases()).Doc(string(msg.CaseID))
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(caseRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.New("case does not exist")
			}
			return goerr.Wrap(err, "failed to get case")
		}
		return tx.Create(r.doc(msg.ID), toMessageDoc(msg))
	})
	if err != nil {
		return goerr.Wrap(err, "failed to add message",
			goerr.V("case_id", msg.CaseID),
			goerr.V("message_id", msg.ID))
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id model.MessageID) error {
	if _, err := r.doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete message", goerr.V("message_id", id))
	}
	return nil
}
