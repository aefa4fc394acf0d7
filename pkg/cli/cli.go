package cli

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/supportcase/pkg/cli/config"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// loadDotEnv reads .env from the working directory into the process
// environment. Variables already set win over the file.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return goerr.Wrap(err, "failed to load .env file")
	}
	return nil
}

func Run(ctx context.Context, args []string, version string) error {
	if err := loadDotEnv(); err != nil {
		logging.Default().Error("failed to load environment", "error", err)
		return err
	}

	var loggerCfg config.Logger
	var closer func()

	app := &cli.Command{
		Name:    "supportcase",
		Usage:   "Customer support case and message API",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting supportcase", "version", version, "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(version),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
