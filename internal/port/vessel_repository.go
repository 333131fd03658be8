package port

import (
	"context"

	"github.com/rl1809/harbor/internal/core/domain"
)

type VesselRepository interface {
	// CreateVessel persists a newly commissioned vessel at version 0
	CreateVessel(ctx context.Context, vessel domain.Snapshot) error

	// GetVessel returns domain.ErrVesselNotFound when no vessel has the ID
	GetVessel(ctx context.Context, id string) (*domain.Vessel, error)

	// UpdateVessel writes the vessel if its stored version still matches, and
	// returns domain.ErrVersionConflict otherwise
	UpdateVessel(ctx context.Context, vessel domain.Snapshot) error

	// AppendLog stores a captain's log entry
	AppendLog(ctx context.Context, entry domain.LogEntry) error

	// ListLog returns a vessel's log entries oldest first
	ListLog(ctx context.Context, vesselID string) ([]domain.LogEntry, error)
}
