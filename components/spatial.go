package components

// Position represents an entity's grid cell.
type Position struct {
	X, Y int
}

// Offset is a relative grid displacement.
type Offset struct {
	DX, DY int
}

// DistSq returns the squared Euclidean length of the offset.
func (o Offset) DistSq() int {
	return o.DX*o.DX + o.DY*o.DY
}

// IsZero reports whether the offset points at the origin cell.
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

// Adjacent reports whether the offset lands in the 8-neighborhood.
func (o Offset) Adjacent() bool {
	return !o.IsZero() && o.DX >= -1 && o.DX <= 1 && o.DY >= -1 && o.DY <= 1
}

// Add returns the position displaced by o.
func (p Position) Add(o Offset) Position {
	return Position{X: p.X + o.DX, Y: p.Y + o.DY}
}
