package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/port"
)

const logWriteTimeout = 5 * time.Second

// RunLogWorker persists captain's log entries until the queue is closed.
func RunLogWorker(id int, queue <-chan domain.LogEntry, repo port.VesselRepository, logger *slog.Logger) {
	for entry := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), logWriteTimeout)

		if err := repo.AppendLog(ctx, entry); err != nil {
			logger.Error("failed to save log entry",
				"worker", id, "entry_id", entry.ID, "vessel_id", entry.VesselID, "error", err)
		} else {
			logger.Debug("saved log entry", "worker", id, "entry_id", entry.ID, "event", entry.Event)
		}

		cancel()
	}
}
