package rdb

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"gorm.io/gorm"
)

type caseRepository struct {
	db *gorm.DB
}

var _ interfaces.CaseRepository = &caseRepository{}

func (r *caseRepository) Get(ctx context.Context, id model.CaseID) (*model.Case, error) {
	var rec caseRecord
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Order("id DESC")
		}).
		Where("id = ?", string(id)).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("id", id))
	}
	return rec.toModel(), nil
}

func (r *caseRepository) Exists(ctx context.Context, id model.CaseID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&caseRecord{}).
		Where("id = ?", string(id)).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, goerr.Wrap(err, "failed to check case existence", goerr.V("id", id))
	}
	return n > 0, nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	var recs []caseRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	cases := make([]*model.Case, 0, len(recs))
	for i := range recs {
		cases = append(cases, recs[i].toModel())
	}
	return cases, nil
}

func (r *caseRepository) Add(ctx context.Context, c *model.Case) error {
	if c == nil {
		return goerr.New("case is nil")
	}
	if err := r.db.WithContext(ctx).Omit("Messages").Create(toCaseRecord(c)).Error; err != nil {
		return goerr.Wrap(err, "failed to add case", goerr.V("id", c.ID))
	}
	return nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	if c == nil {
		return goerr.New("case is nil")
	}
	err := r.db.WithContext(ctx).
		Model(&caseRecord{}).
		Where("id = ?", string(c.ID)).
		Updates(map[string]any{
			"summary":     c.Summary,
			"description": c.Description,
			"customer_id": c.CustomerID,
		}).Error
	if err != nil {
		return goerr.Wrap(err, "failed to update case", goerr.V("id", c.ID))
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, id model.CaseID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", string(id)).Delete(&messageRecord{}).Error; err != nil {
			return goerr.Wrap(err, "failed to delete messages of case")
		}
		if err := tx.Where("id = ?", string(id)).Delete(&caseRecord{}).Error; err != nil {
			return goerr.Wrap(err, "failed to delete case row")
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete case", goerr.V("id", id))
	}
	return nil
}
