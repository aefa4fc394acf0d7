package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/cli/config"
	"github.com/secmon-lab/supportcase/pkg/repository/firestore"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
	"github.com/secmon-lab/supportcase/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create SQL tables or Firestore indexes for the configured backend",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Migrate configuration",
				"repository", repoCfg,
				"dryRun", dryRun)

			w := c.Root().Writer

			switch repoCfg.Backend() {
			case config.BackendSQLite, config.BackendPostgres:
				return migrateSQL(ctx, w, &repoCfg, dryRun)
			case config.BackendFirestore:
				return migrateFirestore(ctx, w, &repoCfg, dryRun)
			case config.BackendMemory:
				logging.Default().Info("Memory backend needs no migration")
				return nil
			default:
				return goerr.Wrap(config.ErrInvalidBackend, "unknown repository backend",
					goerr.V(config.BackendKey, repoCfg.Backend()))
			}
		},
	}
}

func migrateSQL(ctx context.Context, w io.Writer, repoCfg *config.Repository, dryRun bool) error {
	db, err := repoCfg.OpenSQL()
	if err != nil {
		return err
	}
	defer safe.Close(ctx, db)

	missing := db.MissingTables(ctx)
	if dryRun {
		if len(missing) == 0 {
			fmt.Fprintln(w, "No changes required")
			return nil
		}
		for _, table := range missing {
			color.New(color.FgGreen).Fprintf(w, "+ create table %s\n", table)
		}
		return nil
	}

	if err := db.Migrate(ctx); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logging.Default().Info("Migrations applied successfully", "created_tables", missing)
	return nil
}

// firestoreDefaultDatabase is the ID Firestore gives the database created with a project
const firestoreDefaultDatabase = "(default)"

func migrateFirestore(ctx context.Context, w io.Writer, repoCfg *config.Repository, dryRun bool) error {
	logger := logging.Default()

	if repoCfg.ProjectID() == "" {
		return goerr.Wrap(config.ErrMissingOption, "firestore-project-id is required when using firestore backend",
			goerr.V(config.OptionKey, "firestore-project-id"))
	}
	databaseID := repoCfg.DatabaseID()
	if databaseID == "" {
		databaseID = firestoreDefaultDatabase
	}

	indexConfig := firestore.IndexConfig(repoCfg.FirestoreOptions()...)

	client, err := fireconf.New(ctx, repoCfg.ProjectID(), databaseID, indexConfig,
		fireconf.WithLogger(logger))
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client",
			goerr.V("project_id", repoCfg.ProjectID()),
			goerr.V("database_id", databaseID))
	}
	defer safe.Close(ctx, client)

	if !dryRun {
		logger.Info("Applying migrations")
		if err := client.Migrate(ctx); err != nil {
			return goerr.Wrap(err, "failed to apply migrations")
		}
		logger.Info("Migrations applied successfully")
		return nil
	}

	names := make([]string, 0, len(indexConfig.Collections))
	for _, col := range indexConfig.Collections {
		names = append(names, col.Name)
	}
	current, err := client.Import(ctx, names...)
	if err != nil {
		return goerr.Wrap(err, "failed to import current indexes")
	}
	diff, err := client.DiffConfigs(current)
	if err != nil {
		return goerr.Wrap(err, "failed to diff index configuration")
	}

	printIndexDiff(w, diff)
	return nil
}

// printIndexDiff writes one line per index to add or delete
func printIndexDiff(w io.Writer, diff *fireconf.DiffResult) {
	if len(diff.Collections) == 0 {
		fmt.Fprintln(w, "No changes required")
		return
	}

	add := color.New(color.FgGreen)
	del := color.New(color.FgRed, color.Bold)
	for _, col := range diff.Collections {
		for _, idx := range col.IndexesToAdd {
			add.Fprintf(w, "+ %s: index %s\n", col.Name, indexFields(idx))
		}
		for _, idx := range col.IndexesToDelete {
			del.Fprintf(w, "- %s: index %s\n", col.Name, indexFields(idx))
		}
		if col.TTLAction != "" && col.TTL != nil {
			add.Fprintf(w, "~ %s: ttl %s (%s)\n", col.Name, col.TTL.Field, col.TTLAction)
		}
	}
}

func indexFields(idx fireconf.Index) string {
	parts := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Path, f.Order))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
