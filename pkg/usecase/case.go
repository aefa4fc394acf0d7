package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
)

type CaseUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewCaseUseCase(repo interfaces.Repository, now func() time.Time) *CaseUseCase {
	if now == nil {
		now = time.Now
	}
	return &CaseUseCase{
		repo: repo,
		now:  now,
	}
}

func (uc *CaseUseCase) CreateCase(ctx context.Context, summary, description string, customerID int64) (*model.Case, error) {
	c := model.NewCase(summary, description, customerID, uc.now())

	if err := uc.repo.Case().Add(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(CaseIDKey, c.ID))
	}

	logging.From(ctx).Info("case created", "case_id", c.ID, "customer_id", c.CustomerID)
	return c, nil
}

func (uc *CaseUseCase) GetCase(ctx context.Context, id model.CaseID) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(CaseIDKey, id))
	}
	if c == nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
	}
	return c, nil
}

// CaseExists reports whether the case is stored without reading its messages
func (uc *CaseUseCase) CaseExists(ctx context.Context, id model.CaseID) (bool, error) {
	exists, err := uc.repo.Case().Exists(ctx, id)
	if err != nil {
		return false, goerr.Wrap(err, "failed to check case", goerr.V(CaseIDKey, id))
	}
	return exists, nil
}

func (uc *CaseUseCase) ListCases(ctx context.Context) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	return cases, nil
}

// UpdateCase overwrites the mutable fields of an existing case. ID and
// CreatedAt are never changed.
func (uc *CaseUseCase) UpdateCase(ctx context.Context, id model.CaseID, summary, description string, customerID int64) (*model.Case, error) {
	c, err := uc.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Summary = summary
	c.Description = description
	c.CustomerID = customerID

	if err := uc.repo.Case().Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("case updated", "case_id", id)
	return c, nil
}

// DeleteCase removes the case together with all of its messages. It
// returns false when the case did not exist.
func (uc *CaseUseCase) DeleteCase(ctx context.Context, id model.CaseID) (bool, error) {
	exists, err := uc.CaseExists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := uc.repo.Case().Delete(ctx, id); err != nil {
		return false, goerr.Wrap(err, "failed to delete case", goerr.V(CaseIDKey, id))
	}

	logging.From(ctx).Info("case deleted", "case_id", id)
	return true, nil
}
