package config

// NewLoggerForTest creates a Logger config without flag parsing
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest creates a Repository config without flag parsing
func NewRepositoryForTest(backend, sqlitePath, postgresDSN, projectID, databaseID string, autoMigrate bool) *Repository {
	return &Repository{
		backend:     backend,
		sqlitePath:  sqlitePath,
		postgresDSN: postgresDSN,
		projectID:   projectID,
		databaseID:  databaseID,
		autoMigrate: autoMigrate,
	}
}

// NewSentryForTest creates a Sentry config without flag parsing
func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{dsn: dsn, env: env}
}
