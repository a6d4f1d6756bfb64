package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/authsvc"
)

// Worker periodically deletes expired sessions.
type Worker struct {
	authService   *authsvc.AuthService
	sweepInterval time.Duration
	stopCh        chan struct{}
}

func NewWorker(authService *authsvc.AuthService) *Worker {
	sweepMinutes := viper.GetInt("auth.session_sweep_interval_minutes")
	if sweepMinutes == 0 {
		sweepMinutes = 60
	}

	return &Worker{
		authService:   authService,
		sweepInterval: time.Duration(sweepMinutes) * time.Minute,
		stopCh:        make(chan struct{}),
	}
}

// Start sweeps on a ticker until the context is canceled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	slog.Info("Session sweep worker started", "sweep_interval", w.sweepInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session sweep worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Session sweep worker stopped")

			return
		case <-ticker.C:
			n, err := w.authService.PurgeExpired(ctx)
			if err != nil {
				slog.Error("Failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("Purged expired sessions", "count", n)
			}
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}
