package core

// Path is an ordered sequence of coordinates from start to goal inclusive.
// An empty path means the goal was unreachable.
type Path []Coordinate

// IsEmpty reports whether the path has no coordinates.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Len returns the number of coordinates in the path.
func (p Path) Len() int {
	return len(p)
}

// Steps returns the number of moves along the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Start returns the first coordinate. ok is false for an empty path.
func (p Path) Start() (c Coordinate, ok bool) {
	if len(p) == 0 {
		return Coordinate{}, false
	}
	return p[0], true
}

// Goal returns the last coordinate. ok is false for an empty path.
func (p Path) Goal() (c Coordinate, ok bool) {
	if len(p) == 0 {
		return Coordinate{}, false
	}
	return p[len(p)-1], true
}

// Contains reports whether c is on the path.
func (p Path) Contains(c Coordinate) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Set returns the path coordinates as a membership set.
func (p Path) Set() map[Coordinate]bool {
	set := make(map[Coordinate]bool, len(p))
	for _, c := range p {
		set[c] = true
	}
	return set
}
