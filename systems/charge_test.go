package systems

import (
	"testing"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

func TestChargeSustain(t *testing.T) {
	charge := NewCharge(config.Cfg().Predator)

	tests := []struct {
		name       string
		state      components.ChargeState
		energy     int
		wantOK     bool
		wantEnergy int
		wantState  components.ChargeState
	}{
		{"charging with energy", components.Charging, 10, true, 9, components.Charging},
		{"charging at threshold", components.Charging, 5, true, 4, components.Charging},
		{"charging too tired", components.Charging, 4, false, 4, components.NotCharging},
		{"not charging", components.NotCharging, 10, false, 10, components.NotCharging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := components.Predator{Charge: tt.state}
			v := components.Vitals{Energy: tt.energy}

			if got := charge.Sustain(&p, &v); got != tt.wantOK {
				t.Errorf("Sustain = %v, want %v", got, tt.wantOK)
			}
			if v.Energy != tt.wantEnergy {
				t.Errorf("energy = %d, want %d", v.Energy, tt.wantEnergy)
			}
			if p.Charge != tt.wantState {
				t.Errorf("state = %v, want %v", p.Charge, tt.wantState)
			}
		})
	}
}

func TestChargeSighted(t *testing.T) {
	charge := NewCharge(config.Cfg().Predator)

	tests := []struct {
		distSq int
		from   components.ChargeState
		want   components.ChargeState
	}{
		{4, components.NotCharging, components.Charging},
		{9, components.NotCharging, components.Charging},
		{10, components.NotCharging, components.NotCharging},
		{10, components.Charging, components.NotCharging},
		{81, components.Charging, components.NotCharging},
	}

	for _, tt := range tests {
		p := components.Predator{Charge: tt.from}
		charge.Sighted(&p, tt.distSq)
		if p.Charge != tt.want {
			t.Errorf("Sighted(%d) from %v = %v, want %v", tt.distSq, tt.from, p.Charge, tt.want)
		}
	}
}

func TestCanEnter(t *testing.T) {
	tests := []struct {
		name  string
		state components.ChargeState
		kind  components.Kind
		want  bool
	}{
		{"empty while walking", components.NotCharging, components.KindNone, true},
		{"empty while charging", components.Charging, components.KindNone, true},
		{"plant while walking", components.NotCharging, components.KindPlant, false},
		{"plant while charging", components.Charging, components.KindPlant, true},
		{"herbivore while charging", components.Charging, components.KindHerbivore, false},
		{"predator while charging", components.Charging, components.KindPredator, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEnter(tt.state, Cell{Kind: tt.kind}); got != tt.want {
				t.Errorf("CanEnter = %v, want %v", got, tt.want)
			}
		})
	}
}
