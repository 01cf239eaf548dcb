package telemetry

import (
	"testing"

	"github.com/pthm-cable/savanna/components"
)

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, 100)

	lt.Record(NewKillEvent(101, 7, components.Position{X: 1, Y: 1}, 9))
	lt.Record(NewTrampleEvent(102, 7, components.Position{X: 1, Y: 2}))
	lt.Record(NewKillEvent(103, 99, components.Position{}, 7)) // untracked
	lt.RecordCharge(7)
	lt.RecordChild(7)
	lt.UpdateEnergy(7, 12)
	lt.UpdateEnergy(7, 5)

	s := lt.Get(7)
	if s == nil {
		t.Fatal("registered entity not tracked")
	}
	if s.Kills != 1 || s.Trampled != 1 || s.ChargeTicks != 1 || s.Children != 1 {
		t.Errorf("stats = %+v", *s)
	}
	if s.PeakEnergy != 12 {
		t.Errorf("peak energy = %d, want 12", s.PeakEnergy)
	}

	if got := lt.Remove(7); got != s {
		t.Error("Remove returned different stats")
	}
	if lt.Count() != 0 {
		t.Errorf("count = %d after remove, want 0", lt.Count())
	}
}
