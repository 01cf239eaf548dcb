package telemetry

// LifetimeStats tracks per-animal statistics over its lifetime.
type LifetimeStats struct {
	BirthTick int

	Kills       int // predators only
	Grazed      int // herbivores only
	Trampled    int
	ChargeTicks int
	Children    int
	PeakEnergy  int
}

// LifetimeTracker manages per-animal lifetime statistics keyed by entity ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register starts tracking an animal born at birthTick.
func (lt *LifetimeTracker) Register(entityID uint32, birthTick int) {
	lt.stats[entityID] = &LifetimeStats{BirthTick: birthTick}
}

// Get returns the lifetime stats for an entity, or nil if not tracked.
func (lt *LifetimeTracker) Get(entityID uint32) *LifetimeStats {
	return lt.stats[entityID]
}

// Remove stops tracking an entity and returns its final stats.
func (lt *LifetimeTracker) Remove(entityID uint32) *LifetimeStats {
	stats := lt.stats[entityID]
	delete(lt.stats, entityID)
	return stats
}

// Record applies an event to the acting entity's stats.
func (lt *LifetimeTracker) Record(ev Event) {
	s := lt.stats[ev.EntityID]
	if s == nil {
		return
	}
	switch ev.Type {
	case EventKill:
		s.Kills++
	case EventGraze:
		s.Grazed++
	case EventTrample:
		s.Trampled++
	}
}

// RecordCharge counts a tick spent charging.
func (lt *LifetimeTracker) RecordCharge(entityID uint32) {
	if s := lt.stats[entityID]; s != nil {
		s.ChargeTicks++
	}
}

// RecordChild credits a parent with an offspring.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(entityID uint32, energy int) {
	if s := lt.stats[entityID]; s != nil && energy > s.PeakEnergy {
		s.PeakEnergy = energy
	}
}

// Count returns the number of tracked entities.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
