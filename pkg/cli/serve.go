package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/secmon-lab/supportcase/pkg/cli/config"
	httpctrl "github.com/secmon-lab/supportcase/pkg/controller/http"
	"github.com/secmon-lab/supportcase/pkg/service/worker"
	"github.com/secmon-lab/supportcase/pkg/usecase"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
	"github.com/secmon-lab/supportcase/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(version string) *cli.Command {
	var addr string
	var probeInterval time.Duration
	var appCfg config.App
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SUPPORTCASE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "repository-probe-interval",
			Usage:       "Interval of background repository pings exported as metrics (0 disables)",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("SUPPORTCASE_REPOSITORY_PROBE_INTERVAL"),
			Destination: &probeInterval,
		},
	}

	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			app, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}
			policy, err := app.Pagination.PagePolicy()
			if err != nil {
				return goerr.Wrap(err, "failed to configure pagination")
			}

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer flush()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			if probeInterval > 0 {
				probe := worker.NewRepositoryProbeWorker(repo, registry, probeInterval)
				probe.Start(ctx)
				defer probe.Stop()
			}

			server := &http.Server{
				Addr: addr,
				Handler: httpctrl.New(uc,
					httpctrl.WithPagePolicy(policy),
					httpctrl.WithMetricsRegistry(registry),
				),
				ReadHeaderTimeout: 30 * time.Second,
			}

			logger.Info("Server configuration",
				"addr", addr,
				"repository", repoCfg,
				"sentry", sentryCfg,
				"page_default_limit", policy.DefaultLimit,
				"page_max_limit", policy.MaxLimit,
			)

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logger.Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
