package model

import (
	"context"
	"crypto/md5"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// neighborOffsets are the 8-connected offsets around a cell, (0,0) excluded
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid is a fixed-size, non-wrapping Game of Life board.
//
// Cells are stored row-major and linked to their in-bounds neighbors once, at
// construction. Advance and AdvanceParallel are the only mutators besides
// direct writes to Cell.Alive; callers must serialize all of them.
type Grid struct {
	width   int
	height  int
	cells   []Cell
	next    []bool   // scratch buffer for the read phase of a step
	history []string // recent hashes for stagnation detection
}

// NewGrid creates a dead grid of the given dimensions. A non-positive width or
// height yields an empty grid with no cells.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		next:   make([]bool, width*height),
	}
	for y := range height {
		for x := range width {
			g.cells[y*width+x].pos = Position{X: x, Y: y}
		}
	}
	g.linkNeighbors()
	return g
}

// linkNeighbors wires every cell to the cells around it. It must run once,
// after the cell slice is fully allocated.
func (g *Grid) linkNeighbors() {
	for i := range g.cells {
		c := &g.cells[i]
		c.neighbors = make([]*Cell, 0, len(neighborOffsets))
		for _, off := range neighborOffsets {
			if n := g.CellAt(c.pos.X+off[0], c.pos.Y+off[1]); n != nil {
				c.neighbors = append(c.neighbors, n)
			}
		}
	}
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Cells returns every cell in row-major order. Elements are addressable, so
// cells[i].Alive can be flipped in place.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// CellAt returns the cell at (x, y), or nil if the coordinate is out of bounds
func (g *Grid) CellAt(x, y int) *Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// Set sets a cell to alive (true) or dead (false); out of bounds is a no-op
func (g *Grid) Set(x, y int, alive bool) {
	if c := g.CellAt(x, y); c != nil {
		c.Alive = alive
	}
}

// Get returns the state of a cell, false when out of bounds
func (g *Grid) Get(x, y int) bool {
	if c := g.CellAt(x, y); c != nil {
		return c.Alive
	}
	return false
}

// Toggle flips a cell and returns its new state
func (g *Grid) Toggle(x, y int) bool {
	c := g.CellAt(x, y)
	if c == nil {
		return false
	}
	c.Alive = !c.Alive
	return c.Alive
}

// Clear kills every cell and forgets the hash history
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Alive = false
	}
	g.history = nil
}

// Advance computes one generation. Every next state is derived from the
// current generation before any cell is written.
func (g *Grid) Advance() {
	g.computeRows(0, g.height)
	g.commit()
}

// AdvanceParallel computes one generation like Advance, with the read phase
// split into row bands across workers. A non-positive worker count uses one
// worker per CPU. If ctx is cancelled before the read phase finishes the grid
// is left untouched and the context error is returned.
func (g *Grid) AdvanceParallel(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg, egCtx     = errgroup.WithContext(ctx)
		rowsPerWorker = (g.height + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				if err := egCtx.Err(); err != nil {
					return err
				}
				g.computeRows(y, y+1)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return errors.Wrapf(err, "[AdvanceParallel] read phase aborted on %dx%d grid", g.width, g.height)
	}

	g.commit()
	return nil
}

// computeRows records the next state of every cell in rows [startRow, endRow)
func (g *Grid) computeRows(startRow, endRow int) {
	for i := startRow * g.width; i < endRow*g.width; i++ {
		c := &g.cells[i]
		g.next[i] = rules.ApplyConwayRules(c.AliveNeighborCount(), c.Alive)
	}
}

// commit copies the recorded next states onto the cells
func (g *Grid) commit() {
	for i := range g.cells {
		g.cells[i].Alive = g.next[i]
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for i := range g.cells {
		if g.cells[i].Alive {
			count++
		}
	}
	return
}

// BoundingBoxSize returns the area of the smallest rectangle holding every
// living cell, 0 when the grid is dead
func (g *Grid) BoundingBoxSize() int {
	var (
		minX, minY = g.width, g.height
		maxX, maxY = -1, -1
	)
	for i := range g.cells {
		if !g.cells[i].Alive {
			continue
		}
		p := g.cells[i].pos
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if maxX < 0 {
		return 0
	}
	return (maxX - minX + 1) * (maxY - minY + 1)
}

// Hash returns an MD5 digest of the alive states in row-major order
func (g *Grid) Hash() string {
	h := md5.New()
	buf := make([]byte, len(g.cells))
	for i := range g.cells {
		if g.cells[i].Alive {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory records the current state, keeping the last few hashes
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.Hash())
	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three
// recorded states, i.e. the grid is static or cycling with period 1 to 3.
// Call it before UpdateHistory for the same generation.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.Hash()
	for back := 1; back <= 3; back++ {
		if g.history[len(g.history)-back] == currentHash {
			return true
		}
	}
	return false
}
