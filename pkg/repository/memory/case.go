package memory

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

type caseRepository struct {
	m *Memory
}

var _ interfaces.CaseRepository = &caseRepository{}

func (r *caseRepository) Get(_ context.Context, id model.CaseID) (*model.Case, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	c, exists := r.m.cases[id]
	if !exists {
		return nil, nil
	}
	return copyCase(c), nil
}

func (r *caseRepository) Exists(_ context.Context, id model.CaseID) (bool, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	_, exists := r.m.cases[id]
	return exists, nil
}

func (r *caseRepository) List(_ context.Context) ([]*model.Case, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.m.order))
	for _, id := range r.m.order {
		cases = append(cases, copyCase(r.m.cases[id]))
	}
	return cases, nil
}

func (r *caseRepository) Add(_ context.Context, c *model.Case) error {
	if c == nil {
		return goerr.New("case is nil")
	}

	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.cases[c.ID]; exists {
		return goerr.New("case already exists", goerr.V("id", c.ID))
	}

	r.m.cases[c.ID] = copyCase(c)
	r.m.order = append(r.m.order, c.ID)
	return nil
}

func (r *caseRepository) Update(_ context.Context, c *model.Case) error {
	if c == nil {
		return goerr.New("case is nil")
	}

	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	existing, exists := r.m.cases[c.ID]
	if !exists {
		return nil
	}

	existing.Summary = c.Summary
	existing.Description = c.Description
	existing.CustomerID = c.CustomerID
	return nil
}

func (r *caseRepository) Delete(_ context.Context, id model.CaseID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.cases[id]; !exists {
		return nil
	}

	for msgID, msg := range r.m.messages {
		if msg.CaseID == id {
			delete(r.m.messages, msgID)
		}
	}

	delete(r.m.cases, id)
	r.m.order = slices.DeleteFunc(r.m.order, func(v model.CaseID) bool { return v == id })
	return nil
}
