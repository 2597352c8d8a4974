package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Printf("Using default configuration: %v\n", err)
		config = utils.DefaultConfig()
	}
	if err = config.Validate(model.IsPattern); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g := initializeGame(config, os.Stdout)
	displayGameInfo(os.Stdout, g)

	if err = run(ctx, os.Stdout, g); err != nil && ctx.Err() == nil {
		fmt.Printf("Game stopped: %+v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n🛑 Shutting down gracefully...")
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		g.generation, time.Since(g.stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
}

// run drives the render/advance loop until ctx is done, the generation limit
// is hit, or a write fails
func run(ctx context.Context, out io.Writer, g *game) error {
	lastFrameTime := time.Now()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		frameStart := time.Now()
		if err := g.renderer.Clear(); err != nil {
			return err
		}

		fs := updateGameState(g, frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart

		displayGameStatus(out, g, fs)
		if err := g.renderer.Display(g.grid); err != nil {
			return err
		}

		if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
			fmt.Fprintf(out, "\n🏁 Reached maximum generations limit (%d)\n", g.config.MaxGenerations)
			return nil
		}

		shouldRestart, restartReason := checkRestartConditions(fs.livingCells, g.stagnantCount, g.config)
		if shouldRestart && g.config.AutoRestart {
			fmt.Fprintf(out, "🔄 Restarting due to %s...\n", restartReason)
			restartGame(g)
		} else if g.stagnantCount >= 2 {
			// Inject some life to try to break the stagnation
			g.grid.InjectRandomLife(g.config.InjectionCount, g.rng)
		}

		if err := step(ctx, g); err != nil {
			return err
		}
		g.generation++

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.config.FrameRate):
		}
	}
}
