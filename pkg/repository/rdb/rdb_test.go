package rdb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/supportcase/pkg/repository/rdb"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	db, err := rdb.NewSQLite(filepath.Join(t.TempDir(), "migrate.db"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() { gt.NoError(t, db.Close()) })

	gt.Array(t, db.MissingTables(ctx)).Length(2)

	gt.NoError(t, db.Migrate(ctx)).Required()
	gt.Array(t, db.MissingTables(ctx)).Length(0)

	// running twice is harmless
	gt.NoError(t, db.Migrate(ctx))
}

func TestNew_RequiresTarget(t *testing.T) {
	_, err := rdb.NewSQLite("")
	gt.Error(t, err)

	_, err = rdb.NewPostgres("")
	gt.Error(t, err)
}
