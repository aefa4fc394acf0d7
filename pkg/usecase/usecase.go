package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
)

type UseCases struct {
	repo    interfaces.Repository
	now     func() time.Time
	Case    *CaseUseCase
	Message *MessageUseCase
}

type Option func(*UseCases)

// WithClock replaces the time source used to stamp new cases and messages.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Case = NewCaseUseCase(repo, uc.now)
	uc.Message = NewMessageUseCase(repo, uc.now)

	return uc
}

// Health reports whether the backing store answers.
func (uc *UseCases) Health(ctx context.Context) error {
	if err := uc.repo.Ping(ctx); err != nil {
		return goerr.Wrap(err, "repository is unavailable")
	}
	return nil
}
