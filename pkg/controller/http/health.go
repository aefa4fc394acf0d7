package http

import (
	"net/http"
	"time"

	"github.com/secmon-lab/supportcase/pkg/utils/errutil"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()

	if err := s.uc.Health(ctx); err != nil {
		_ = errutil.Handle(ctx, err, "health check failed")
		writeJSON(ctx, w, http.StatusServiceUnavailable, healthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Error:     err.Error(),
			Timestamp: now,
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: now,
	})
}
