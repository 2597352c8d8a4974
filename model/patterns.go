package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

const (
	PatternGlider  = "glider"
	PatternBlinker = "blinker"
	PatternBlock   = "block"
)

// patterns holds small seed shapes as live offsets from their top-left corner
var patterns = map[string][]Position{
	// heads down and to the right, one cell every four generations
	PatternGlider:  {{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	PatternBlinker: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	PatternBlock:   {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
}

// IsPattern reports whether name is a known seed pattern
func IsPattern(name string) bool {
	_, ok := patterns[name]
	return ok
}

// SeedPattern stamps the named pattern with its top-left corner at (startX, startY).
// Live cells falling outside the grid are dropped.
func (g *Grid) SeedPattern(name string, startX, startY int) error {
	offsets, ok := patterns[name]
	if !ok {
		return errors.Errorf("[SeedPattern] unknown pattern: %q", name)
	}
	for _, off := range offsets {
		g.Set(startX+off.X, startY+off.Y, true)
	}
	return nil
}

// AddGlider adds a glider pattern at the specified position
func (g *Grid) AddGlider(startX, startY int) {
	_ = g.SeedPattern(PatternGlider, startX, startY)
}

// AddBlinker adds a horizontal blinker oscillator at the specified position
func (g *Grid) AddBlinker(startX, startY int) {
	_ = g.SeedPattern(PatternBlinker, startX, startY)
}

// AddBlock adds a 2x2 still life at the specified position
func (g *Grid) AddBlock(startX, startY int) {
	_ = g.SeedPattern(PatternBlock, startX, startY)
}

// Randomize sets every cell alive with probability density
func (g *Grid) Randomize(density float64, rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i].Alive = rng.Float64() < density
	}
}

// InjectRandomLife brings count random cells to life to break stagnation
func (g *Grid) InjectRandomLife(count int, rng *rand.Rand) {
	if len(g.cells) == 0 {
		return
	}
	for range count {
		g.cells[rng.IntN(len(g.cells))].Alive = true
	}
}
