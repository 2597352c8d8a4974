package model

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
)

// setAlive brings the given positions to life
func setAlive(g *Grid, positions ...Position) {
	for _, p := range positions {
		g.Set(p.X, p.Y, true)
	}
}

// requireAlive fails unless exactly the given positions are alive
func requireAlive(t *testing.T, g *Grid, positions ...Position) {
	t.Helper()
	want := make(map[Position]bool, len(positions))
	for _, p := range positions {
		want[p] = true
	}
	for _, c := range g.Cells() {
		if c.Alive != want[c.Position()] {
			t.Fatalf("cell %+v alive=%v, expected %v", c.Position(), c.Alive, want[c.Position()])
		}
	}
}

func randomGrid(width, height int, seed uint64) *Grid {
	g := NewGrid(width, height)
	g.Randomize(0.35, rand.New(rand.NewPCG(seed, 0)))
	return g
}

func cloneGrid(src *Grid) *Grid {
	dst := NewGrid(src.GetWidth(), src.GetHeight())
	for i, c := range src.Cells() {
		dst.Cells()[i].Alive = c.Alive
	}
	return dst
}

func TestNewGridPositions(t *testing.T) {
	const width, height = 7, 4
	g := NewGrid(width, height)

	if got := len(g.Cells()); got != width*height {
		t.Fatalf("len(Cells()) = %d, want %d", got, width*height)
	}

	seen := make(map[Position]int)
	for i, c := range g.Cells() {
		p := c.Position()
		if want := (Position{X: i % width, Y: i / width}); p != want {
			t.Fatalf("cell %d has position %+v, want %+v", i, p, want)
		}
		if c.Alive {
			t.Fatalf("cell %+v starts alive", p)
		}
		seen[p]++
	}

	for y := range height {
		for x := range width {
			if n := seen[Position{X: x, Y: y}]; n != 1 {
				t.Fatalf("position (%d,%d) appears %d times", x, y, n)
			}
			if c := g.CellAt(x, y); c == nil || c.Position() != (Position{X: x, Y: y}) {
				t.Fatalf("CellAt(%d,%d) = %+v", x, y, c)
			}
		}
	}
}

func TestNewGridNeighbors(t *testing.T) {
	const width, height = 5, 4
	g := NewGrid(width, height)

	for _, c := range g.Cells() {
		p := c.Position()
		onEdgeX := p.X == 0 || p.X == width-1
		onEdgeY := p.Y == 0 || p.Y == height-1

		want := 8
		switch {
		case onEdgeX && onEdgeY:
			want = 3
		case onEdgeX || onEdgeY:
			want = 5
		}

		neighbors := c.Neighbors()
		if len(neighbors) != want {
			t.Fatalf("cell %+v has %d neighbors, want %d", p, len(neighbors), want)
		}

		seen := make(map[Position]bool)
		for _, n := range neighbors {
			if n == p {
				t.Fatalf("cell %+v is its own neighbor", p)
			}
			if seen[n] {
				t.Fatalf("cell %+v lists neighbor %+v twice", p, n)
			}
			seen[n] = true

			dx, dy := n.X-p.X, n.Y-p.Y
			if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
				t.Fatalf("cell %+v has non-adjacent neighbor %+v", p, n)
			}
		}
	}
}

func TestNewGridDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.width, tt.height)
			if len(g.Cells()) != 0 {
				t.Fatalf("expected no cells, got %d", len(g.Cells()))
			}
			if g.CellAt(0, 0) != nil {
				t.Fatal("CellAt(0,0) on an empty grid should be nil")
			}
			g.Advance()
			if err := g.AdvanceParallel(context.Background(), 4); err != nil {
				t.Fatalf("AdvanceParallel: %v", err)
			}
		})
	}
}

func TestSingleCellGrid(t *testing.T) {
	g := NewGrid(1, 1)
	g.Set(0, 0, true)

	if n := len(g.CellAt(0, 0).Neighbors()); n != 0 {
		t.Fatalf("1x1 cell has %d neighbors", n)
	}
	g.Advance()
	if g.Get(0, 0) {
		t.Fatal("lone cell on a 1x1 grid should die")
	}
}

func TestCellAtOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3)
	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {-1, -1}, {3, 3}} {
		if g.CellAt(p.X, p.Y) != nil {
			t.Fatalf("CellAt(%d,%d) should be nil", p.X, p.Y)
		}
		if g.Get(p.X, p.Y) {
			t.Fatalf("Get(%d,%d) should be false", p.X, p.Y)
		}
		g.Set(p.X, p.Y, true)
		if g.Toggle(p.X, p.Y) {
			t.Fatalf("Toggle(%d,%d) should report false", p.X, p.Y)
		}
	}
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("out of bounds writes changed the grid: %d alive", n)
	}
}

func TestAliveNeighborCountTracksCurrentState(t *testing.T) {
	g := NewGrid(3, 3)
	center := g.CellAt(1, 1)
	if n := center.AliveNeighborCount(); n != 0 {
		t.Fatalf("AliveNeighborCount() = %d, want 0", n)
	}

	g.Set(0, 0, true)
	g.Set(2, 2, true)
	if n := center.AliveNeighborCount(); n != 2 {
		t.Fatalf("AliveNeighborCount() = %d, want 2", n)
	}

	g.Cells()[0].Alive = false
	if n := center.AliveNeighborCount(); n != 1 {
		t.Fatalf("AliveNeighborCount() after direct write = %d, want 1", n)
	}
}

func TestToggle(t *testing.T) {
	g := NewGrid(4, 4)
	if !g.Toggle(2, 1) {
		t.Fatal("first Toggle should make the cell alive")
	}
	if !g.Get(2, 1) {
		t.Fatal("Get after Toggle should be true")
	}
	if g.Toggle(2, 1) {
		t.Fatal("second Toggle should kill the cell")
	}
}

func TestAdvanceIsolatedCellDies(t *testing.T) {
	g := NewGrid(5, 5)
	g.Set(2, 2, true)
	g.Advance()
	requireAlive(t, g)
}

func TestAdvanceBlockIsStill(t *testing.T) {
	g := NewGrid(6, 6)
	block := []Position{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
	setAlive(g, block...)

	for range 3 {
		g.Advance()
		requireAlive(t, g, block...)
	}
}

func TestAdvanceBlinker(t *testing.T) {
	horizontal := []Position{{1, 3}, {2, 3}, {3, 3}}
	vertical := []Position{{2, 2}, {2, 3}, {2, 4}}

	g := NewGrid(5, 5)
	setAlive(g, horizontal...)

	g.Advance()
	requireAlive(t, g, vertical...)

	g.Advance()
	requireAlive(t, g, horizontal...)
}

func TestAdvanceBirth(t *testing.T) {
	tests := []struct {
		name      string
		neighbors []Position
		wantAlive bool
	}{
		{"two neighbors", []Position{{1, 1}, {3, 1}}, false},
		{"three neighbors", []Position{{1, 1}, {2, 1}, {3, 1}}, true},
		{"four neighbors", []Position{{1, 1}, {2, 1}, {3, 1}, {1, 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(5, 5)
			setAlive(g, tt.neighbors...)
			g.Advance()
			if got := g.Get(2, 2); got != tt.wantAlive {
				t.Fatalf("dead cell with %d neighbors: alive=%v, want %v", len(tt.neighbors), got, tt.wantAlive)
			}
		})
	}
}

func TestAdvanceIsDeterministic(t *testing.T) {
	a := randomGrid(31, 17, 7)
	b := cloneGrid(a)
	if a.Hash() != b.Hash() {
		t.Fatal("clone differs from source")
	}

	for gen := range 10 {
		a.Advance()
		b.Advance()
		if a.Hash() != b.Hash() {
			t.Fatalf("generation %d diverged", gen+1)
		}
	}
}

func TestAdvanceParallelMatchesAdvance(t *testing.T) {
	for _, workers := range []int{-1, 0, 1, 3, 8, 100} {
		seq := randomGrid(37, 23, uint64(workers+10))
		par := cloneGrid(seq)

		for gen := range 5 {
			seq.Advance()
			if err := par.AdvanceParallel(context.Background(), workers); err != nil {
				t.Fatalf("workers=%d: AdvanceParallel: %v", workers, err)
			}
			if seq.Hash() != par.Hash() {
				t.Fatalf("workers=%d: generation %d diverged from sequential step", workers, gen+1)
			}
		}
	}
}

func TestAdvanceParallelCancelled(t *testing.T) {
	g := randomGrid(20, 20, 3)
	before := g.Hash()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.AdvanceParallel(ctx, 4)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AdvanceParallel error = %v, want context.Canceled", err)
	}
	if g.Hash() != before {
		t.Fatal("cancelled step modified the grid")
	}
}

func TestCountAndBoundingBox(t *testing.T) {
	g := NewGrid(10, 10)
	if g.BoundingBoxSize() != 0 {
		t.Fatalf("empty grid bounding box = %d", g.BoundingBoxSize())
	}

	setAlive(g, Position{2, 3}, Position{5, 4}, Position{3, 7})
	if n := g.CountLivingCells(); n != 3 {
		t.Fatalf("CountLivingCells() = %d, want 3", n)
	}
	// x 2..5, y 3..7
	if got := g.BoundingBoxSize(); got != 4*5 {
		t.Fatalf("BoundingBoxSize() = %d, want 20", got)
	}

	g.Clear()
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("CountLivingCells() after Clear = %d", n)
	}
}

func TestIsStagnant(t *testing.T) {
	tests := []struct {
		name  string
		seed  func(g *Grid)
		stuck bool
	}{
		{"block", func(g *Grid) { g.AddBlock(5, 5) }, true},
		{"blinker", func(g *Grid) { g.AddBlinker(5, 5) }, true},
		{"extinct", func(g *Grid) {}, true},
		{"glider", func(g *Grid) { g.AddGlider(1, 1) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(20, 20)
			tt.seed(g)

			for range 3 {
				if g.IsStagnant() {
					t.Fatal("IsStagnant should need three recorded generations")
				}
				g.UpdateHistory()
				g.Advance()
			}
			if got := g.IsStagnant(); got != tt.stuck {
				t.Fatalf("IsStagnant() = %v, want %v", got, tt.stuck)
			}
		})
	}
}

func TestHistoryIsBounded(t *testing.T) {
	g := NewGrid(4, 4)
	for range 3 * historySize {
		g.UpdateHistory()
	}
	if len(g.history) != historySize {
		t.Fatalf("history length = %d, want %d", len(g.history), historySize)
	}

	g.Clear()
	if len(g.history) != 0 {
		t.Fatal("Clear should drop the history")
	}
}
