package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
)

func runMessageRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	// seed stores n messages one second apart so that message i is the i-th oldest.
	seed := func(t *testing.T, repo interfaces.Repository, n int) (*model.Case, []*model.Message) {
		t.Helper()
		ctx := context.Background()

		c := newTestCase("paginated", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, c)).Required()

		msgs := make([]*model.Message, 0, n)
		for i := range n {
			m := c.AddMessage("message", baseTime.Add(time.Duration(i+1)*time.Second))
			gt.NoError(t, repo.Message().Add(ctx, m)).Required()
			msgs = append(msgs, m)
		}
		return c, msgs
	}

	t.Run("Add and Get round-trip a message", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := newTestCase("with message", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, c)).Required()

		m := c.AddMessage("customer cannot log in", baseTime.Add(time.Minute))
		gt.NoError(t, repo.Message().Add(ctx, m)).Required()

		got, err := repo.Message().Get(ctx, m.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got).NotNil().Required()
		gt.Value(t, got.ID).Equal(m.ID)
		gt.Value(t, got.CaseID).Equal(c.ID)
		gt.Value(t, got.Content).Equal("customer cannot log in")
		gt.Bool(t, got.CreatedAt.Equal(m.CreatedAt)).True()
	})

	t.Run("Add fails when case does not exist", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		orphan := newTestCase("never stored", baseTime)
		m := orphan.AddMessage("lost", baseTime)
		gt.Error(t, repo.Message().Add(ctx, m))

		got, err := repo.Message().Get(ctx, m.ID)
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("Get returns nil for missing message", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.Message().Get(context.Background(), model.NewMessageID())
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("GetByCase pages newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		c, msgs := seed(t, repo, 15)

		page, total, err := repo.Message().GetByCase(ctx, c.ID, 10, 0)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(15)
		gt.Array(t, page).Length(10).Required()
		for i, m := range page {
			gt.Value(t, m.ID).Equal(msgs[14-i].ID)
		}

		page, total, err = repo.Message().GetByCase(ctx, c.ID, 5, 10)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(15)
		gt.Array(t, page).Length(5).Required()
		for i, m := range page {
			gt.Value(t, m.ID).Equal(msgs[4-i].ID)
		}
	})

	t.Run("GetByCase past the end returns empty page with total", func(t *testing.T) {
		repo := newRepo(t)
		c, _ := seed(t, repo, 15)

		page, total, err := repo.Message().GetByCase(context.Background(), c.ID, 10, 20)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(15)
		gt.Array(t, page).Length(0)
	})

	t.Run("GetByCase returns partial last page", func(t *testing.T) {
		repo := newRepo(t)
		c, msgs := seed(t, repo, 3)

		page, total, err := repo.Message().GetByCase(context.Background(), c.ID, 10, 1)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(3)
		gt.Array(t, page).Length(2).Required()
		gt.Value(t, page[0].ID).Equal(msgs[1].ID)
		gt.Value(t, page[1].ID).Equal(msgs[0].ID)
	})

	t.Run("GetByCase only returns messages of the case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		c, _ := seed(t, repo, 2)

		other := newTestCase("other", baseTime)
		gt.NoError(t, repo.Case().Add(ctx, other)).Required()
		gt.NoError(t, repo.Message().Add(ctx, other.AddMessage("elsewhere", baseTime))).Required()

		page, total, err := repo.Message().GetByCase(ctx, c.ID, 10, 0)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(2)
		for _, m := range page {
			gt.Value(t, m.CaseID).Equal(c.ID)
		}
	})

	t.Run("GetByCase of unknown case is empty", func(t *testing.T) {
		repo := newRepo(t)

		page, total, err := repo.Message().GetByCase(context.Background(), model.NewCaseID(), 10, 0)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(0)
		gt.Array(t, page).Length(0)
	})

	t.Run("Delete removes only the given message", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		c, msgs := seed(t, repo, 2)

		gt.NoError(t, repo.Message().Delete(ctx, msgs[0].ID)).Required()

		got, err := repo.Message().Get(ctx, msgs[0].ID)
		gt.NoError(t, err)
		gt.Value(t, got).Nil()

		page, total, err := repo.Message().GetByCase(ctx, c.ID, 10, 0)
		gt.NoError(t, err).Required()
		gt.Number(t, total).Equal(1)
		gt.Array(t, page).Length(1).Required()
		gt.Value(t, page[0].ID).Equal(msgs[1].ID)
	})
}
