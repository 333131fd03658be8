package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func newMinnow(t *testing.T) *Vessel {
	t.Helper()
	v, err := NewVessel("S.S. Minnow", []string{"The Skipper", "Gilligan", "Mary-anne"}, 25.0)
	if err != nil {
		t.Fatalf("NewVessel failed: %v", err)
	}
	return v
}

func TestNewVessel_StartsStopped(t *testing.T) {
	v := newMinnow(t)

	if v.CurrentSpeed() != 0 {
		t.Errorf("expected speed 0, got %g", v.CurrentSpeed())
	}
	if v.MaxSpeed() != 25.0 {
		t.Errorf("expected max speed 25, got %g", v.MaxSpeed())
	}
	if v.Name() != "S.S. Minnow" {
		t.Errorf("expected name S.S. Minnow, got %s", v.Name())
	}
}

func TestNewVessel_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		vessel   string
		crew     []string
		maxSpeed float64
	}{
		{"empty name", "", nil, 10},
		{"negative speed", "Minnow", nil, -1},
		{"unnamed crew member", "Minnow", []string{"Gilligan", ""}, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVessel(tc.vessel, tc.crew, tc.maxSpeed)
			if !errors.Is(err, ErrInvalidVessel) {
				t.Errorf("expected ErrInvalidVessel, got: %v", err)
			}
		})
	}
}

func TestNewVessel_CopiesCrew(t *testing.T) {
	crew := []string{"The Skipper", "Gilligan"}
	v, err := NewVessel("Minnow", crew, 10)
	if err != nil {
		t.Fatalf("NewVessel failed: %v", err)
	}

	crew[0] = "The Professor"
	if got := v.Crew()[0]; got != "The Skipper" {
		t.Errorf("roster changed through caller slice: %s", got)
	}
}

func TestSpeedOrders(t *testing.T) {
	v := newMinnow(t)

	msg := v.FullSpeed()
	if v.CurrentSpeed() != 25.0 {
		t.Errorf("expected speed 25, got %g", v.CurrentSpeed())
	}
	if msg != "Full speed ahead! S.S. Minnow is moving at 25 knots." {
		t.Errorf("unexpected full speed report: %q", msg)
	}

	msg = v.FullStop()
	if v.CurrentSpeed() != 0 {
		t.Errorf("expected speed 0, got %g", v.CurrentSpeed())
	}
	if msg != "All stop! S.S. Minnow is moving at 0 knots." {
		t.Errorf("unexpected full stop report: %q", msg)
	}

	msg = v.HalfSpeed()
	if v.CurrentSpeed() != 12.5 {
		t.Errorf("expected speed 12.5, got %g", v.CurrentSpeed())
	}
	if msg != "Half speed ahead! S.S. Minnow is moving at 12.5 knots." {
		t.Errorf("unexpected half speed report: %q", msg)
	}
}

func TestFullStop_FromAnySpeed(t *testing.T) {
	for _, order := range []SpeedOrder{OrderFullSpeed, OrderHalfSpeed, OrderFullStop} {
		v := newMinnow(t)
		if _, err := v.Apply(order); err != nil {
			t.Fatalf("apply %s: %v", order, err)
		}
		v.FullStop()
		if v.CurrentSpeed() != 0 {
			t.Errorf("after %s then stop: expected 0, got %g", order, v.CurrentSpeed())
		}
	}
}

func TestApply_UnknownOrder(t *testing.T) {
	v := newMinnow(t)
	v.FullSpeed()

	_, err := v.Apply(SpeedOrder("flank_speed"))
	if !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("expected ErrUnknownOrder, got: %v", err)
	}
	if v.CurrentSpeed() != 25.0 {
		t.Errorf("unknown order changed speed to %g", v.CurrentSpeed())
	}
}

func TestReportSpeed(t *testing.T) {
	v := newMinnow(t)
	v.HalfSpeed()

	if got := v.reportSpeed(); !strings.Contains(got, "12.5") {
		t.Errorf("expected report to contain current speed, got %q", got)
	}
}

func TestRollCall(t *testing.T) {
	v := newMinnow(t)

	first := v.RollCall()
	want := []string{"The Skipper is present!", "Gilligan is present!", "Mary-anne is present!"}
	if !reflect.DeepEqual(first, want) {
		t.Errorf("expected %v, got %v", want, first)
	}

	second := v.RollCall()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("roll call not repeatable: %v vs %v", first, second)
	}

	first[0] = "mutated"
	if v.RollCall()[0] != "The Skipper is present!" {
		t.Error("roll call result aliases vessel state")
	}
}

func TestRollCall_EmptyRoster(t *testing.T) {
	v, err := NewVessel("Dinghy", nil, 3)
	if err != nil {
		t.Fatalf("NewVessel failed: %v", err)
	}
	if lines := v.RollCall(); len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}

func TestRemoveCrewAt(t *testing.T) {
	v := newMinnow(t)

	name, err := v.RemoveCrewAt(1)
	if err != nil {
		t.Fatalf("RemoveCrewAt failed: %v", err)
	}
	if name != "Gilligan" {
		t.Errorf("expected Gilligan, got %s", name)
	}

	wantCrew := []string{"The Skipper", "Mary-anne"}
	if !reflect.DeepEqual(v.Crew(), wantCrew) {
		t.Errorf("expected crew %v, got %v", wantCrew, v.Crew())
	}

	wantCall := []string{"The Skipper is present!", "Mary-anne is present!"}
	if !reflect.DeepEqual(v.RollCall(), wantCall) {
		t.Errorf("expected roll call %v, got %v", wantCall, v.RollCall())
	}
}

func TestRemoveCrewAt_OutOfRange(t *testing.T) {
	v := newMinnow(t)

	for _, pos := range []int{-1, 3, 100} {
		name, err := v.RemoveCrewAt(pos)
		if !errors.Is(err, ErrCrewPositionOutOfRange) {
			t.Errorf("position %d: expected ErrCrewPositionOutOfRange, got: %v", pos, err)
		}
		if name != "" {
			t.Errorf("position %d: expected empty name, got %s", pos, name)
		}
	}

	if len(v.Crew()) != 3 {
		t.Errorf("expected roster untouched, got %v", v.Crew())
	}
}

func TestRemoveCrewAt_DoesNotAliasEarlierCopies(t *testing.T) {
	v := newMinnow(t)
	before := v.Crew()

	if _, err := v.RemoveCrewAt(0); err != nil {
		t.Fatalf("RemoveCrewAt failed: %v", err)
	}
	if before[0] != "The Skipper" || len(before) != 3 {
		t.Errorf("earlier copy changed: %v", before)
	}
}

func TestAddCrew(t *testing.T) {
	v := newMinnow(t)

	if err := v.AddCrew("The Professor"); err != nil {
		t.Fatalf("AddCrew failed: %v", err)
	}
	crew := v.Crew()
	if crew[len(crew)-1] != "The Professor" {
		t.Errorf("expected new member last, got %v", crew)
	}

	if err := v.AddCrew(""); !errors.Is(err, ErrInvalidVessel) {
		t.Errorf("expected ErrInvalidVessel, got: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	v := newMinnow(t)
	v.ID = "vessel-1"
	v.Version = 4
	v.HalfSpeed()

	restored := RestoreVessel(v.Snapshot())
	if !reflect.DeepEqual(restored.Snapshot(), v.Snapshot()) {
		t.Errorf("expected %+v, got %+v", v.Snapshot(), restored.Snapshot())
	}
}

func TestSpeedOrderValid(t *testing.T) {
	if !OrderHalfSpeed.Valid() {
		t.Error("expected half_speed to be valid")
	}
	if SpeedOrder("reverse").Valid() {
		t.Error("expected reverse to be invalid")
	}
}
