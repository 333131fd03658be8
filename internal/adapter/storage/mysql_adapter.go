package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/harbor/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS vessels (
		id            VARCHAR(36)  NOT NULL PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		crew          JSON         NOT NULL,
		max_speed     DOUBLE       NOT NULL,
		current_speed DOUBLE       NOT NULL DEFAULT 0,
		version       INT          NOT NULL DEFAULT 0,
		created_at    DATETIME(6)  NOT NULL,
		updated_at    DATETIME(6)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS vessel_log (
		id         VARCHAR(36) NOT NULL PRIMARY KEY,
		vessel_id  VARCHAR(36) NOT NULL,
		event      VARCHAR(32) NOT NULL,
		message    TEXT        NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_vessel_log_vessel (vessel_id, created_at)
	)`,
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// EnsureSchema creates the vessel tables when they are missing.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) CreateVessel(ctx context.Context, v domain.Snapshot) error {
	crew, err := encodeCrew(v.Crew)
	if err != nil {
		return err
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO vessels (id, name, crew, max_speed, current_speed, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		v.ID, v.Name, crew, v.MaxSpeed, v.CurrentSpeed, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vessel: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetVessel(ctx context.Context, id string) (*domain.Vessel, error) {
	var (
		s    domain.Snapshot
		crew []byte
	)
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, crew, max_speed, current_speed, version, created_at, updated_at
		FROM vessels WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &crew, &s.MaxSpeed, &s.CurrentSpeed, &s.Version, &s.CreatedAt, &s.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVesselNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query vessel: %w", err)
	}

	if err := json.Unmarshal(crew, &s.Crew); err != nil {
		return nil, fmt.Errorf("decode crew: %w", err)
	}

	return domain.RestoreVessel(s), nil
}

func (m *MySQLAdapter) UpdateVessel(ctx context.Context, v domain.Snapshot) error {
	crew, err := encodeCrew(v.Crew)
	if err != nil {
		return err
	}

	result, err := m.db.ExecContext(ctx, `
		UPDATE vessels
		SET crew = ?, current_speed = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		crew, v.CurrentSpeed, v.UpdatedAt, v.ID, v.Version,
	)
	if err != nil {
		return fmt.Errorf("update vessel: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists int
	err = m.db.QueryRowContext(ctx, `SELECT 1 FROM vessels WHERE id = ?`, v.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVesselNotFound
	}
	if err != nil {
		return fmt.Errorf("query vessel: %w", err)
	}
	return domain.ErrVersionConflict
}

func (m *MySQLAdapter) AppendLog(ctx context.Context, e domain.LogEntry) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO vessel_log (id, vessel_id, event, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.VesselID, e.Event, e.Message, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListLog(ctx context.Context, vesselID string) ([]domain.LogEntry, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, vessel_id, event, message, created_at
		FROM vessel_log WHERE vessel_id = ?
		ORDER BY created_at, id`, vesselID,
	)
	if err != nil {
		return nil, fmt.Errorf("query log: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.ID, &e.VesselID, &e.Event, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func encodeCrew(crew []string) ([]byte, error) {
	if crew == nil {
		crew = []string{}
	}
	b, err := json.Marshal(crew)
	if err != nil {
		return nil, fmt.Errorf("encode crew: %w", err)
	}
	return b, nil
}
