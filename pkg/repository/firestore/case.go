package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type caseRepository struct {
	client *firestore.Client
	cols   *collections
}

var _ interfaces.CaseRepository = &caseRepository{}

func (r *caseRepository) doc(id model.CaseID) *firestore.DocumentRef {
	return r.client.Collection(r.cols.cases()).Doc(string(id))
}

func (r *caseRepository) Get(ctx context.Context, id model.CaseID) (*model.Case, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("id", id))
	}

	var d caseDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V("id", id))
	}
	return d.toModel(), nil
}

func (r *caseRepository) Exists(ctx context.Context, id model.CaseID) (bool, error) {
	if _, err := r.doc(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to check case existence", goerr.V("id", id))
	}
	return true, nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	iter := r.client.Collection(r.cols.cases()).OrderBy("CreatedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	cases := []*model.Case{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var d caseDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", snap.Ref.ID))
		}
		cases = append(cases, d.toModel())
	}
	return cases, nil
}

func (r *caseRepository) Add(ctx context.Context, c *model.Case) error {
	if c == nil {
		return goerr.New("case is nil")
	}
	if _, err := r.doc(c.ID).Create(ctx, toCaseDoc(c)); err != nil {
		return goerr.Wrap(err, "failed to add case", goerr.V("id", c.ID))
	}
	return nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	if c == nil {
		return goerr.New("case is nil")
	}

	_, err := r.doc(c.ID).Update(ctx, []firestore.Update{
		{Path: "Summary", Value: c.Summary},
		{Path: "Description", Value: c.Description},
		{Path: "CustomerID", Value: c.CustomerID},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to update case", goerr.V("id", c.ID))
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, id model.CaseID) error {
	caseRef := r.doc(id)
	msgQuery := r.client.Collection(r.cols.messages()).Where("CaseID", "==", string(id))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		msgRefs, err := tx.Documents(msgQuery).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query messages of case")
		}

		for _, snap := range msgRefs {
			if err := tx.Delete(snap.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete message", goerr.V("message_id", snap.Ref.ID))
			}
		}
		return tx.Delete(caseRef)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete case", goerr.V("id", id))
	}
	return nil
}
