package model

// Position is a 0-indexed lattice coordinate.
type Position struct {
	X, Y int
}

// Cell is a single lattice position. Alive may be flipped directly by a
// collaborator; everything else is fixed once the owning Grid is built.
type Cell struct {
	Alive bool

	pos       Position
	neighbors []*Cell // points into the owning grid's cells, never reallocated
}

// Position returns the cell's coordinate.
func (c *Cell) Position() Position {
	return c.pos
}

// AliveNeighborCount returns how many neighbors are alive right now
func (c *Cell) AliveNeighborCount() (count int) {
	for _, n := range c.neighbors {
		if n.Alive {
			count++
		}
	}
	return
}

// Neighbors returns the positions of the cell's neighbors in the order they were linked
func (c *Cell) Neighbors() []Position {
	positions := make([]Position, 0, len(c.neighbors))
	for _, n := range c.neighbors {
		positions = append(positions, n.pos)
	}
	return positions
}
