package usecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/repository/memory"
	"github.com/secmon-lab/supportcase/pkg/usecase"
)

var errStorage = errors.New("storage unavailable")

// tickingClock returns a clock that advances one second on every call.
func tickingClock() func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newUseCases() (*usecase.UseCases, *memory.Memory) {
	repo := memory.New()
	return usecase.New(repo, usecase.WithClock(tickingClock())), repo
}

// brokenRepository fails every storage call.
type brokenRepository struct{}

func (brokenRepository) Case() interfaces.CaseRepository       { return brokenCaseRepository{} }
func (brokenRepository) Message() interfaces.MessageRepository { return brokenMessageRepository{} }
func (brokenRepository) Ping(context.Context) error            { return errStorage }
func (brokenRepository) Close() error                          { return nil }

type brokenCaseRepository struct{}

func (brokenCaseRepository) Get(context.Context, model.CaseID) (*model.Case, error) {
	return nil, errStorage
}
func (brokenCaseRepository) Exists(context.Context, model.CaseID) (bool, error) {
	return false, errStorage
}
func (brokenCaseRepository) List(context.Context) ([]*model.Case, error) { return nil, errStorage }
func (brokenCaseRepository) Add(context.Context, *model.Case) error      { return errStorage }
func (brokenCaseRepository) Update(context.Context, *model.Case) error   { return errStorage }
func (brokenCaseRepository) Delete(context.Context, model.CaseID) error  { return errStorage }

type brokenMessageRepository struct{}

func (brokenMessageRepository) GetByCase(context.Context, model.CaseID, int, int) ([]*model.Message, int, error) {
	return nil, 0, errStorage
}
func (brokenMessageRepository) Get(context.Context, model.MessageID) (*model.Message, error) {
	return nil, errStorage
}
func (brokenMessageRepository) Add(context.Context, *model.Message) error       { return errStorage }
func (brokenMessageRepository) Delete(context.Context, model.MessageID) error { return errStorage }

// vanishedCaseRepository reports every case as absent while leaving the
// underlying messages readable.
type vanishedCaseRepository struct {
	interfaces.Repository
}

func (x vanishedCaseRepository) Case() interfaces.CaseRepository {
	return vanishedCases{x.Repository.Case()}
}

type vanishedCases struct {
	interfaces.CaseRepository
}

func (vanishedCases) Exists(context.Context, model.CaseID) (bool, error) { return false, nil }
