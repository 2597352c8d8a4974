package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// game bundles everything the terminal loop mutates between frames
type game struct {
	config   utils.Config
	grid     *model.Grid
	rng      *rand.Rand
	renderer *model.TerminalRenderer
	stats    *utils.Stats

	generation     int
	stagnantCount  int
	lastRestartGen int
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer) *game {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &game{
		config:   config,
		rng:      rand.New(rand.NewPCG(uint64(seed), 0)),
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(),
	}
	g.grid = newSeededGrid(config, g.rng)
	return g
}

// newSeededGrid builds a grid with random life plus the configured patterns
func newSeededGrid(config utils.Config, rng *rand.Rand) *model.Grid {
	grid := model.NewGrid(config.Width, config.Height)
	grid.Randomize(config.RandomDensity, rng)

	if config.Pattern != "" {
		_ = grid.SeedPattern(config.Pattern, 1, 1)
	}
	if grid.GetWidth() >= 10 && grid.GetHeight() >= 10 {
		grid.AddBlinker(grid.GetWidth()/4, grid.GetHeight()/4)
		if grid.GetWidth() >= 30 {
			grid.AddBlock(3*grid.GetWidth()/4, 3*grid.GetHeight()/4)
		}
	}
	return grid
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, g *game) {
	mode := "sequential"
	switch {
	case g.config.Workers < 0:
		mode = "parallel (one worker per CPU)"
	case g.config.Workers > 0:
		mode = fmt.Sprintf("parallel (%d workers)", g.config.Workers)
	}
	fmt.Fprintf(out, "Step mode: %s | Seed pattern: %q\n", mode, g.config.Pattern)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		g.grid.GetWidth(), g.grid.GetHeight(), g.grid.CountLivingCells())
	fmt.Fprintln(out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(out)
}

// frameStatus is what updateGameState learns about the current generation
type frameStatus struct {
	livingCells int
	density     float64
	status      string
	isStagnant  bool
}

// updateGameState samples the current generation and updates stats and history
func updateGameState(g *game, frameDuration time.Duration) frameStatus {
	livingCells := g.grid.CountLivingCells()
	density := float64(livingCells) / float64(g.grid.GetWidth()*g.grid.GetHeight()) * 100

	g.stats.Update(g.generation, livingCells, frameDuration)

	// Compare against history before recording this generation
	isStagnant := g.grid.IsStagnant()
	g.grid.UpdateHistory()

	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	status := "Active"
	if isStagnant {
		status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return frameStatus{
		livingCells: livingCells,
		density:     density,
		status:      status,
		isStagnant:  isStagnant,
	}
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, g *game, fs frameStatus) {
	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells\n",
		g.generation, fs.livingCells, fs.density, fs.status, g.grid.BoundingBoxSize())
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, time.Since(g.stats.StartTime).Seconds())

	if g.generation > g.lastRestartGen {
		fmt.Fprintf(out, "Generations since restart: %d\n", g.generation-g.lastRestartGen)
	}
	fmt.Fprintln(out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame replaces the grid with a freshly seeded one
func restartGame(g *game) {
	g.grid = newSeededGrid(g.config, g.rng)
	g.lastRestartGen = g.generation
	g.stagnantCount = 0
}

// step advances the grid one generation using the configured step mode
func step(ctx context.Context, g *game) error {
	if g.config.Workers == 0 {
		g.grid.Advance()
		return nil
	}
	return g.grid.AdvanceParallel(ctx, g.config.Workers)
}
