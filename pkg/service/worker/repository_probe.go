package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/secmon-lab/supportcase/pkg/domain/interfaces"
	"github.com/secmon-lab/supportcase/pkg/utils/logging"
)

// RepositoryProbeWorker pings the repository on a fixed interval and
// publishes the outcome as Prometheus gauges.
type RepositoryProbeWorker struct {
	repo     interfaces.Repository
	interval time.Duration
	timeout  time.Duration
	up       prometheus.Gauge
	latency  prometheus.Gauge
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewRepositoryProbeWorker creates the worker and registers its gauges on reg
func NewRepositoryProbeWorker(repo interfaces.Repository, reg prometheus.Registerer, interval time.Duration) *RepositoryProbeWorker {
	w := &RepositoryProbeWorker{
		repo:     repo,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
		up: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "supportcase",
			Subsystem: "repository",
			Name:      "up",
			Help:      "1 if the last repository ping succeeded, 0 otherwise.",
		}),
		latency: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "supportcase",
			Subsystem: "repository",
			Name:      "ping_duration_seconds",
			Help:      "Duration of the last repository ping.",
		}),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	reg.MustRegister(w.up, w.latency)
	return w
}

// Start begins the probe loop in a background goroutine
func (w *RepositoryProbeWorker) Start(ctx context.Context) {
	logging.Default().Info("Repository probe worker starting", "interval", w.interval.String())
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *RepositoryProbeWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Repository probe worker stopped")
}

func (w *RepositoryProbeWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.probe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.probe(ctx)
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// probe runs a single ping and records its result
func (w *RepositoryProbeWorker) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	err := w.repo.Ping(ctx)
	w.latency.Set(time.Since(start).Seconds())

	if err != nil {
		w.up.Set(0)
		logging.Default().Warn("Repository ping failed", "error", err.Error())
		return
	}
	w.up.Set(1)
}
