// Package telemetry provides ecosystem health tracking, bookmarking, and CSV output.
package telemetry

import "github.com/pthm-cable/savanna/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventKill EventType = iota
	EventGraze
	EventTrample
	EventBirth
	EventDeath
)

var eventNames = [...]string{"kill", "graze", "trample", "birth", "death"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// DeathCause says why the lifecycle pass removed an entity.
type DeathCause uint8

const (
	CauseStarved DeathCause = iota
	CauseAged
)

func (c DeathCause) String() string {
	if c == CauseStarved {
		return "starved"
	}
	return "aged"
}

// Event represents a single telemetry event at a grid cell.
type Event struct {
	Type     EventType
	Tick     int
	EntityID uint32
	Kind     components.Kind
	Pos      components.Position

	// Optional fields depending on event type
	Gain  int        // energy gained (kill, graze)
	Cause DeathCause // death events only
}

// NewKillEvent creates a kill event at the cell where the prey died.
func NewKillEvent(tick int, predatorID uint32, pos components.Position, gain int) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: predatorID,
		Kind:     components.KindPredator,
		Pos:      pos,
		Gain:     gain,
	}
}

// NewGrazeEvent creates a graze event.
func NewGrazeEvent(tick int, herbivoreID uint32, pos components.Position, gain int) Event {
	return Event{
		Type:     EventGraze,
		Tick:     tick,
		EntityID: herbivoreID,
		Kind:     components.KindHerbivore,
		Pos:      pos,
		Gain:     gain,
	}
}

// NewTrampleEvent creates an event for a plant crushed by a charge.
func NewTrampleEvent(tick int, predatorID uint32, pos components.Position) Event {
	return Event{
		Type:     EventTrample,
		Tick:     tick,
		EntityID: predatorID,
		Kind:     components.KindPredator,
		Pos:      pos,
	}
}

// NewBirthEvent creates a birth event for an animal or seedling.
func NewBirthEvent(tick int, childID uint32, kind components.Kind, pos components.Position) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Kind:     kind,
		Pos:      pos,
	}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int, entityID uint32, kind components.Kind, pos components.Position, cause DeathCause) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Kind:     kind,
		Pos:      pos,
		Cause:    cause,
	}
}
