package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/port"
)

var ErrDuplicateRequest = errors.New("duplicate request")

const maxUpdateAttempts = 3

type VesselService struct {
	repo     port.VesselRepository
	cache    port.CacheRepository
	logQueue chan domain.LogEntry
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.RWMutex // guards closed against sends on logQueue
	closed bool
}

func NewVesselService(repo port.VesselRepository, cache port.CacheRepository, queueSize int, logger *slog.Logger) *VesselService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &VesselService{
		repo:     repo,
		cache:    cache,
		logQueue: make(chan domain.LogEntry, queueSize),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *VesselService) Commission(ctx context.Context, name string, crew []string, maxSpeed float64) (*domain.Vessel, error) {
	v, err := domain.NewVessel(name, crew, maxSpeed)
	if err != nil {
		return nil, err
	}

	now := s.now()
	v.ID = uuid.NewString()
	v.CreatedAt = now
	v.UpdatedAt = now

	if err := s.repo.CreateVessel(ctx, v.Snapshot()); err != nil {
		return nil, fmt.Errorf("create vessel: %w", err)
	}

	s.logger.Info("vessel commissioned", "vessel_id", v.ID, "name", v.Name(), "crew", len(crew))
	s.record(ctx, v.ID, domain.LogEventCommissioned,
		fmt.Sprintf("%s commissioned with %d crew, rated for %g knots", v.Name(), len(crew), v.MaxSpeed()))

	return v, nil
}

func (s *VesselService) Get(ctx context.Context, id string) (*domain.Vessel, error) {
	return s.repo.GetVessel(ctx, id)
}

// Command applies a speed order. A non-empty requestID is accepted once.
func (s *VesselService) Command(ctx context.Context, requestID, id string, order domain.SpeedOrder) (string, error) {
	if !order.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownOrder, order)
	}

	var idempotencyKey string
	if requestID != "" {
		idempotencyKey = "command:" + requestID
		ok, err := s.cache.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			return "", fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return "", ErrDuplicateRequest
		}
	}

	var report string
	_, err := s.mutate(ctx, id, func(v *domain.Vessel) error {
		r, err := v.Apply(order)
		report = r
		return err
	})
	if err != nil {
		// The order never took effect, so the caller may retry it.
		if idempotencyKey != "" {
			if relErr := s.cache.ReleaseIdempotency(context.WithoutCancel(ctx), idempotencyKey); relErr != nil {
				s.logger.Warn("idempotency release failed", "vessel_id", id, "request_id", requestID, "error", relErr)
			}
		}
		return "", err
	}

	s.logger.Info("speed order applied", "vessel_id", id, "order", order)
	s.record(ctx, id, domain.LogEventSpeedOrder, report)

	return report, nil
}

// RollCall serves from the cache and falls back to the stored roster. The
// roster is cached under the version it was read at, so a write that lands
// in between is never hidden by an older roster.
func (s *VesselService) RollCall(ctx context.Context, id string) ([]string, error) {
	lines, found, err := s.cache.GetRollCall(ctx, id)
	if err != nil {
		s.logger.Warn("roll call cache read failed", "vessel_id", id, "error", err)
	} else if found {
		return lines, nil
	}

	v, err := s.repo.GetVessel(ctx, id)
	if err != nil {
		return nil, err
	}

	lines = v.RollCall()
	if err := s.cache.SetRollCall(ctx, id, v.Version, lines); err != nil {
		s.logger.Warn("roll call cache write failed", "vessel_id", id, "error", err)
	}

	return lines, nil
}

func (s *VesselService) DismissCrew(ctx context.Context, id string, pos int) (string, error) {
	var removed string
	version, err := s.mutate(ctx, id, func(v *domain.Vessel) error {
		name, err := v.RemoveCrewAt(pos)
		removed = name
		return err
	})
	if err != nil {
		return "", err
	}

	s.invalidateRollCall(ctx, id, version)
	s.logger.Info("crew dismissed", "vessel_id", id, "position", pos, "member", removed)
	s.record(ctx, id, domain.LogEventCrewDismissed, removed+" dismissed")

	return removed, nil
}

func (s *VesselService) BoardCrew(ctx context.Context, id, name string) error {
	version, err := s.mutate(ctx, id, func(v *domain.Vessel) error {
		return v.AddCrew(name)
	})
	if err != nil {
		return err
	}

	s.invalidateRollCall(ctx, id, version)
	s.logger.Info("crew boarded", "vessel_id", id, "member", name)
	s.record(ctx, id, domain.LogEventCrewBoarded, name+" came aboard")

	return nil
}

// CaptainsLog returns the persisted log of a vessel. Entries still queued
// for the workers are not included.
func (s *VesselService) CaptainsLog(ctx context.Context, id string) ([]domain.LogEntry, error) {
	if _, err := s.repo.GetVessel(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListLog(ctx, id)
}

func (s *VesselService) LogQueue() <-chan domain.LogEntry {
	return s.logQueue
}

// Close stops accepting log entries and closes the queue so the workers can
// drain it. Entries recorded afterwards are dropped. Safe to call twice.
func (s *VesselService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.logQueue)
}

// mutate loads the vessel, applies fn and writes it back, reloading on
// version conflicts up to maxUpdateAttempts times. It returns the version
// the vessel was stored at.
func (s *VesselService) mutate(ctx context.Context, id string, fn func(*domain.Vessel) error) (int, error) {
	for attempt := 1; ; attempt++ {
		v, err := s.repo.GetVessel(ctx, id)
		if err != nil {
			return 0, err
		}
		if err := fn(v); err != nil {
			return 0, err
		}

		v.UpdatedAt = s.now()
		err = s.repo.UpdateVessel(ctx, v.Snapshot())
		if err == nil {
			return v.Version + 1, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) || attempt == maxUpdateAttempts {
			return 0, fmt.Errorf("update vessel: %w", err)
		}

		s.logger.Debug("vessel version conflict, retrying", "vessel_id", id, "attempt", attempt)
	}
}

func (s *VesselService) invalidateRollCall(ctx context.Context, id string, version int) {
	if err := s.cache.InvalidateRollCall(ctx, id, version); err != nil {
		s.logger.Warn("roll call cache invalidation failed", "vessel_id", id, "error", err)
	}
}

func (s *VesselService) record(ctx context.Context, vesselID string, event domain.LogEvent, message string) {
	entry := domain.LogEntry{
		ID:        uuid.NewString(),
		VesselID:  vesselID,
		Event:     event,
		Message:   message,
		CreatedAt: s.now(),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn("captain's log entry dropped after close", "vessel_id", vesselID, "event", event)
		return
	}

	select {
	case s.logQueue <- entry:
	case <-ctx.Done():
		s.logger.Warn("captain's log entry dropped", "vessel_id", vesselID, "event", event, "error", ctx.Err())
	}
}
