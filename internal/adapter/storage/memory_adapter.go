package storage

import (
	"context"
	"sync"

	"github.com/rl1809/harbor/internal/core/domain"
)

// MemoryAdapter keeps vessels, log entries and caches in process memory. It
// backs the voyage CLI and handler tests.
type MemoryAdapter struct {
	mu          sync.Mutex
	vessels     map[string]domain.Snapshot
	logs        []domain.LogEntry
	idempotency map[string]struct{}
	rollCalls   map[string]rollCallEntry
}

// rollCallEntry is a roster cached at a vessel version. An entry without
// lines is a tombstone left by an invalidation.
type rollCallEntry struct {
	version int
	lines   []string
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		vessels:     make(map[string]domain.Snapshot),
		idempotency: make(map[string]struct{}),
		rollCalls:   make(map[string]rollCallEntry),
	}
}

func (m *MemoryAdapter) CreateVessel(ctx context.Context, v domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v.Version = 0
	v.Crew = append([]string(nil), v.Crew...)
	m.vessels[v.ID] = v
	return nil
}

func (m *MemoryAdapter) GetVessel(ctx context.Context, id string) (*domain.Vessel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.vessels[id]
	if !ok {
		return nil, domain.ErrVesselNotFound
	}
	return domain.RestoreVessel(s), nil
}

func (m *MemoryAdapter) UpdateVessel(ctx context.Context, v domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.vessels[v.ID]
	if !ok {
		return domain.ErrVesselNotFound
	}
	if stored.Version != v.Version {
		return domain.ErrVersionConflict
	}

	stored.Crew = append([]string(nil), v.Crew...)
	stored.CurrentSpeed = v.CurrentSpeed
	stored.UpdatedAt = v.UpdatedAt
	stored.Version++
	m.vessels[v.ID] = stored
	return nil
}

func (m *MemoryAdapter) AppendLog(ctx context.Context, e domain.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, e)
	return nil
}

func (m *MemoryAdapter) ListLog(ctx context.Context, vesselID string) ([]domain.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []domain.LogEntry
	for _, e := range m.logs {
		if e.VesselID == vesselID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MemoryAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.idempotency[key]; ok {
		return false, nil
	}
	m.idempotency[key] = struct{}{}
	return true, nil
}

func (m *MemoryAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.idempotency, key)
	return nil
}

func (m *MemoryAdapter) GetRollCall(ctx context.Context, vesselID string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.rollCalls[vesselID]
	if !ok || entry.lines == nil {
		return nil, false, nil
	}
	return append([]string{}, entry.lines...), true, nil
}

func (m *MemoryAdapter) SetRollCall(ctx context.Context, vesselID string, version int, lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.rollCalls[vesselID]; ok && entry.version > version {
		return nil
	}
	m.rollCalls[vesselID] = rollCallEntry{version: version, lines: append([]string{}, lines...)}
	return nil
}

func (m *MemoryAdapter) InvalidateRollCall(ctx context.Context, vesselID string, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.rollCalls[vesselID]; ok && entry.version >= version {
		return nil
	}
	m.rollCalls[vesselID] = rollCallEntry{version: version}
	return nil
}
