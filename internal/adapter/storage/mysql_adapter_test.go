package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/rl1809/harbor/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/harbor?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := NewMySQLAdapter(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	return db
}

func testSnapshot() domain.Snapshot {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Snapshot{
		ID:        uuid.NewString(),
		Name:      "S.S. Minnow",
		Crew:      []string{"The Skipper", "Gilligan", "Mary-anne"},
		MaxSpeed:  25.0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMySQLCreateAndGetVessel(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	s := testSnapshot()
	defer db.ExecContext(ctx, `DELETE FROM vessels WHERE id = ?`, s.ID)

	if err := adapter.CreateVessel(ctx, s); err != nil {
		t.Fatalf("CreateVessel failed: %v", err)
	}

	v, err := adapter.GetVessel(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetVessel failed: %v", err)
	}
	if v.Name() != s.Name {
		t.Errorf("expected name %s, got %s", s.Name, v.Name())
	}
	if !reflect.DeepEqual(v.Crew(), s.Crew) {
		t.Errorf("expected crew %v, got %v", s.Crew, v.Crew())
	}
	if v.MaxSpeed() != 25.0 {
		t.Errorf("expected max speed 25, got %g", v.MaxSpeed())
	}
	if v.Version != 0 {
		t.Errorf("expected version 0, got %d", v.Version)
	}
}

func TestMySQLGetVessel_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	_, err := NewMySQLAdapter(db).GetVessel(context.Background(), "nonexistent-vessel")
	if !errors.Is(err, domain.ErrVesselNotFound) {
		t.Errorf("expected ErrVesselNotFound, got: %v", err)
	}
}

func TestMySQLUpdateVessel_OptimisticLock(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	s := testSnapshot()
	defer db.ExecContext(ctx, `DELETE FROM vessels WHERE id = ?`, s.ID)

	if err := adapter.CreateVessel(ctx, s); err != nil {
		t.Fatalf("CreateVessel failed: %v", err)
	}

	// Update with correct version
	s.CurrentSpeed = 12.5
	s.Crew = []string{"The Skipper", "Mary-anne"}
	if err := adapter.UpdateVessel(ctx, s); err != nil {
		t.Fatalf("UpdateVessel failed: %v", err)
	}

	v, err := adapter.GetVessel(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetVessel failed: %v", err)
	}
	if v.Version != 1 {
		t.Errorf("expected version 1, got %d", v.Version)
	}
	if v.CurrentSpeed() != 12.5 {
		t.Errorf("expected speed 12.5, got %g", v.CurrentSpeed())
	}
	if len(v.Crew()) != 2 {
		t.Errorf("expected 2 crew, got %v", v.Crew())
	}

	// Try update with stale version
	err = adapter.UpdateVessel(ctx, s)
	if !errors.Is(err, domain.ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got: %v", err)
	}
}

func TestMySQLUpdateVessel_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	err := NewMySQLAdapter(db).UpdateVessel(context.Background(), testSnapshot())
	if !errors.Is(err, domain.ErrVesselNotFound) {
		t.Errorf("expected ErrVesselNotFound, got: %v", err)
	}
}

func TestMySQLCaptainsLog(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	vesselID := uuid.NewString()
	defer db.ExecContext(ctx, `DELETE FROM vessel_log WHERE vessel_id = ?`, vesselID)

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, event := range []domain.LogEvent{domain.LogEventCommissioned, domain.LogEventSpeedOrder} {
		err := adapter.AppendLog(ctx, domain.LogEntry{
			ID:        uuid.NewString(),
			VesselID:  vesselID,
			Event:     event,
			Message:   string(event),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("AppendLog failed: %v", err)
		}
	}

	entries, err := adapter.ListLog(ctx, vesselID)
	if err != nil {
		t.Fatalf("ListLog failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Event != domain.LogEventCommissioned {
		t.Errorf("expected commissioned first, got %s", entries[0].Event)
	}
}

var errRowsAffected = errors.New("rows affected unsupported")

// rowsAffectedConnector hands out connections whose exec results cannot
// report affected rows.
type rowsAffectedConnector struct{}

func (rowsAffectedConnector) Connect(context.Context) (driver.Conn, error) {
	return rowsAffectedConn{}, nil
}

func (rowsAffectedConnector) Driver() driver.Driver { return rowsAffectedDriver{} }

type rowsAffectedDriver struct{}

func (rowsAffectedDriver) Open(string) (driver.Conn, error) { return rowsAffectedConn{}, nil }

type rowsAffectedConn struct{}

func (rowsAffectedConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (rowsAffectedConn) Close() error                        { return nil }
func (rowsAffectedConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (rowsAffectedConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	return rowsAffectedResult{}, nil
}

type rowsAffectedResult struct{}

func (rowsAffectedResult) LastInsertId() (int64, error) { return 0, nil }
func (rowsAffectedResult) RowsAffected() (int64, error) { return 0, errRowsAffected }

func TestUpdateVessel_RowsAffectedError(t *testing.T) {
	db := sql.OpenDB(rowsAffectedConnector{})
	defer db.Close()

	err := NewMySQLAdapter(db).UpdateVessel(context.Background(), testSnapshot())
	if !errors.Is(err, errRowsAffected) {
		t.Fatalf("expected rows affected error, got: %v", err)
	}
	if errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrVesselNotFound) {
		t.Errorf("rows affected failure reported as %v", err)
	}
}
