package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/headless"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDemoRuns    int
	flagDemoSave    bool
	flagDemoVerbose bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Let the autopilot play without a TUI",
	Long: `Run the engine headless in real time with the built-in autopilot
steering, and log each run's result. Runs use the configured board and
speed, so a demo on a large board at the easy preset takes a while.

Examples:
  snake demo
  snake demo --runs 5 --rows 10 --cols 10 --obstacles 0
  snake demo --difficulty hard --verbose
  snake demo --save --db ./demo.db`,
	Run: runDemo,
}

func init() {
	demoCmd.Flags().IntVar(&flagDemoRuns, "runs", 1, "Number of runs to play")
	demoCmd.Flags().BoolVar(&flagDemoSave, "save", false, "Record demo runs in the scores database")
	demoCmd.Flags().BoolVarP(&flagDemoVerbose, "verbose", "v", false, "Log every food eaten")
}

func runDemo(cmd *cobra.Command, _ []string) {
	snakeCfg, err := loadSnakeConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "snake-demo",
	})
	if flagDemoVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	var store *storage.Store
	if flagDemoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameID := variantFor(snakeCfg)
	settings, speed := snake.FromConfig(snakeCfg)

	best := 0
	if store != nil {
		if stored, err := store.HighScore(gameID); err == nil {
			best = stored
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	for i := 0; i < flagDemoRuns; i++ {
		engine := snake.NewEngine(
			snake.WithSettings(settings),
			snake.WithSpeedCurve(speed),
			snake.WithSeed(seed+int64(i)),
			snake.WithMaxAttempts(snakeCfg.Spawn.MaxAttempts),
			snake.WithHighScore(best),
			snake.WithHooks(snake.Hooks{
				PersistHighScore: func(score int) {
					if store == nil {
						return
					}
					if err := store.SetHighScore(gameID, score); err != nil {
						logger.Warn("cannot save high score", "error", err)
					}
				},
			}),
		)
		if err := engine.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger.Info("run started",
			"run", i+1,
			"board", fmt.Sprintf("%dx%d", settings.Cols, settings.Rows),
			"obstacles", settings.Obstacles,
			"wrap", settings.Wrap,
		)

		runner := headless.NewRunner(engine, headless.WithAutopilot(), headless.WithLogger(logger))
		if err := runner.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		result, _ := runner.Wait(context.Background())
		runner.Stop()

		best = max(best, result.Final.HighScore)

		if store != nil && result.Final.Score > 0 && !result.Stopped {
			info := storage.RunInfo{
				Rows:      settings.Rows,
				Cols:      settings.Cols,
				Obstacles: settings.Obstacles,
				Wrap:      settings.Wrap,
			}
			if runID, err := store.SaveScore(gameID, result.Final.Score, info); err != nil {
				logger.Warn("cannot save run", "error", err)
			} else {
				logger.Debug("run saved", "run_id", runID)
			}
		}

		if result.Stopped {
			return
		}
	}
}
