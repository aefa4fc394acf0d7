package rdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DB is a relational repository backed by gorm. PostgreSQL and SQLite are supported.
type DB struct {
	db          *gorm.DB
	caseRepo    *caseRepository
	messageRepo *messageRepository
}

var _ interfaces.Repository = &DB{}

type config struct {
	slowThreshold time.Duration
	logLevel      gormLogger.LogLevel
}

type Option func(*config)

// WithSlowThreshold sets the duration above which queries are logged as slow
func WithSlowThreshold(d time.Duration) Option {
	return func(c *config) {
		c.slowThreshold = d
	}
}

// WithQueryLogging logs every SQL statement
func WithQueryLogging() Option {
	return func(c *config) {
		c.logLevel = gormLogger.Info
	}
}

// NewPostgres connects to PostgreSQL using a libpq style DSN or URL
func NewPostgres(dsn string, opts ...Option) (*DB, error) {
	if dsn == "" {
		return nil, goerr.New("postgres DSN is required")
	}
	db, err := open(postgres.Open(dsn), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to postgres")
	}
	return db, nil
}

// NewSQLite opens (or creates) a SQLite database file with foreign keys enabled
func NewSQLite(path string, opts ...Option) (*DB, error) {
	if path == "" {
		return nil, goerr.New("sqlite path is required")
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := open(sqlite.Open(dsn), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite", goerr.V("path", path))
	}
	return db, nil
}

func open(dialector gorm.Dialector, opts ...Option) (*DB, error) {
	cfg := &config{
		slowThreshold: time.Second,
		logLevel:      gormLogger.Warn,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(slogWriter{}, gormLogger.Config{
			SlowThreshold:             cfg.slowThreshold,
			LogLevel:                  cfg.logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}

	return &DB{
		db:          gdb,
		caseRepo:    &caseRepository{db: gdb},
		messageRepo: &messageRepository{db: gdb},
	}, nil
}

// Migrate creates or updates the support_cases and messages tables
func (d *DB) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).AutoMigrate(&caseRecord{}, &messageRecord{}); err != nil {
		return goerr.Wrap(err, "failed to migrate schema")
	}
	return nil
}

// MissingTables lists the tables Migrate would create
func (d *DB) MissingTables(ctx context.Context) []string {
	migrator := d.db.WithContext(ctx).Migrator()

	var missing []string
	for _, rec := range []interface{ TableName() string }{caseRecord{}, messageRecord{}} {
		if !migrator.HasTable(rec.TableName()) {
			missing = append(missing, rec.TableName())
		}
	}
	return missing
}

func (d *DB) Case() interfaces.CaseRepository {
	return d.caseRepo
}

func (d *DB) Message() interfaces.MessageRepository {
	return d.messageRepo
}

func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return goerr.Wrap(err, "failed to ping database")
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql.DB")
	}
	return sqlDB.Close()
}

// slogWriter routes gorm logger output to the application logger
type slogWriter struct{}

func (slogWriter) Printf(format string, args ...any) {
	logging.Default().Warn("gorm", slog.String("message", fmt.Sprintf(format, args...)))
}
