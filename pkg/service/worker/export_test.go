package worker

import "context"

// Probe runs one probe cycle synchronously for testing
func (w *RepositoryProbeWorker) Probe(ctx context.Context) {
	w.probe(ctx)
}
