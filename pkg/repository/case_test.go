package repository_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

func runCaseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Add and Get round-trip a case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newTestCase("Login failure", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, c)).Required()

		got, err := repo.Case().Get(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil().Required()
		gt.Value(t, got.ID).Equal(c.ID)
		gt.Value(t, got.Summary).Equal(c.Summary)
		gt.Value(t, got.Description).Equal(c.Description)
		gt.Value(t, got.CustomerID).Equal(c.CustomerID)
		gt.Bool(t, got.CreatedAt.Equal(c.CreatedAt)).True()
	})

	t.Run("Get returns nil for missing case", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.Case().Get(context.Background(), model.NewCaseID())
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("Exists tracks Add and Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newTestCase("Exists", baseTime)
		exists, err := repo.Case().Exists(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, exists).False()

		gt.NoError(t, repo.Case().Add(ctx, c)).Required()
		gt.NoError(t, repo.Message().Add(ctx, c.AddMessage("hello", baseTime.Add(time.Second)))).Required()

		exists, err = repo.Case().Exists(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, exists).True()

		gt.NoError(t, repo.Case().Delete(ctx, c.ID)).Required()
		exists, err = repo.Case().Exists(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, exists).False()
	})

	t.Run("Add rejects nil case", func(t *testing.T) {
		repo := newRepo(t)
		gt.Error(t, repo.Case().Add(context.Background(), nil))
	})

	t.Run("List includes added cases", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c1 := newTestCase("first", baseTime)
		c2 := newTestCase("second", baseTime.Add(time.Second))
		gt.NoError(t, repo.Case().Add(ctx, c1)).Required()
		gt.NoError(t, repo.Case().Add(ctx, c2)).Required()

		cases, err := repo.Case().List(ctx)
		gt.NoError(t, err).Required()

		ids := make([]model.CaseID, 0, len(cases))
		for _, c := range cases {
			ids = append(ids, c.ID)
		}
		gt.Bool(t, slices.Contains(ids, c1.ID)).True()
		gt.Bool(t, slices.Contains(ids, c2.ID)).True()
	})

	t.Run("Update overwrites mutable fields only", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newTestCase("before", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, c)).Required()

		changed := *c
		changed.Summary = "after"
		changed.Description = "updated description"
		changed.CustomerID = 7
		changed.CreatedAt = baseTime.Add(time.Hour)
		gt.NoError(t, repo.Case().Update(ctx, &changed)).Required()

		got, err := repo.Case().Get(ctx, c.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil().Required()
		gt.Value(t, got.Summary).Equal("after")
		gt.Value(t, got.Description).Equal("updated description")
		gt.Value(t, got.CustomerID).Equal(int64(7))
		gt.Bool(t, got.CreatedAt.Equal(baseTime)).True()
	})

	t.Run("Update of missing case does not create it", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newTestCase("ghost", baseTime)
		gt.NoError(t, repo.Case().Update(ctx, c))

		got, err := repo.Case().Get(ctx, c.ID)
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("Delete removes case and its messages", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newTestCase("to delete", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, c)).Required()

		m1 := c.AddMessage("hello", baseTime.Add(time.Minute))
		m2 := c.AddMessage("world", baseTime.Add(2*time.Minute))
		gt.NoError(t, repo.Message().Add(ctx, m1)).Required()
		gt.NoError(t, repo.Message().Add(ctx, m2)).Required()

		other := newTestCase("survivor", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, other)).Required()
		kept := other.AddMessage("still here", baseTime.Add(time.Minute))
		gt.NoError(t, repo.Message().Add(ctx, kept)).Required()

		gt.NoError(t, repo.Case().Delete(ctx, c.ID)).Required()

		got, err := repo.Case().Get(ctx, c.ID)
		gt.NoError(t, err)
		gt.Value(t, got).Nil()

		for _, id := range []model.MessageID{m1.ID, m2.ID} {
			msg, err := repo.Message().Get(ctx, id)
			gt.NoError(t, err)
			gt.Value(t, msg).Nil()
		}

		msgs, total, err := repo.Message().GetByCase(ctx, c.ID, 10, 0)
		gt.NoError(t, err)
		gt.Array(t, msgs).Length(0)
		gt.Number(t, total).Equal(0)

		msg, err := repo.Message().Get(ctx, kept.ID)
		gt.NoError(t, err)
		gt.Value(t, msg).NotNil()
	})

	t.Run("Delete of missing case is not an error", func(t *testing.T) {
		repo := newRepo(t)
		gt.NoError(t, repo.Case().Delete(context.Background(), model.NewCaseID()))
	})
}
