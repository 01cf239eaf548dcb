package components

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"Empty", "Predator", "Herbivore", "Plant"}
}

// Glyph returns the rune used when printing the world.
func (k Kind) Glyph() rune {
	switch k {
	case KindPredator:
		return '@'
	case KindHerbivore:
		return '&'
	case KindPlant:
		return '*'
	}
	return '.'
}

// String returns the display name for a ChargeState.
func (s ChargeState) String() string {
	if s == Charging {
		return "Charging"
	}
	return "NotCharging"
}
