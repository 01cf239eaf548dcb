package systems

import (
	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// Charge is the predator's charging state machine.
//
// A charging predator advances every tick and may trample plants, paying
// Cost energy per tick while its energy stays at or above MinEnergy.
type Charge struct {
	DistanceSq int // Prey at or inside this squared distance triggers a charge
	MinEnergy  int
	Cost       int
}

// NewCharge builds the state machine from predator config.
func NewCharge(cfg config.PredatorConfig) Charge {
	return Charge{
		DistanceSq: cfg.ChargeDistance * cfg.ChargeDistance,
		MinEnergy:  cfg.ChargeMinEnergy,
		Cost:       cfg.ChargeCost,
	}
}

// Sustain continues an ongoing charge, debiting its cost. It returns false and
// drops the predator out of charging when it was not charging or is too tired.
func (c Charge) Sustain(p *components.Predator, v *components.Vitals) bool {
	if p.Charge == components.Charging && v.Energy >= c.MinEnergy {
		v.Energy -= c.Cost
		return true
	}
	p.Charge = components.NotCharging
	return false
}

// Sighted updates the state after a hunt scan spotted non-adjacent prey at distSq.
func (c Charge) Sighted(p *components.Predator, distSq int) {
	if distSq <= c.DistanceSq {
		p.Charge = components.Charging
	} else {
		p.Charge = components.NotCharging
	}
}

// CanEnter reports whether a predator in state s may step onto cell.
// Empty cells are always open; plants only while charging.
func CanEnter(s components.ChargeState, cell Cell) bool {
	if cell.Empty() {
		return true
	}
	return s == components.Charging && cell.Kind == components.KindPlant
}
