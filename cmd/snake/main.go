// snake is a terminal snake game with local play, a headless demo mode and an
// SSH server for remote play.
//
// Usage:
//
//	snake list              - List available variants
//	snake play [variant]    - Play a run
//	snake menu              - Settings menu, scoreboard and play loop
//	snake serve             - Start SSH server for remote play
//	snake scores [variant]  - Show high scores
//	snake demo              - Watch the autopilot play without a TUI
//	snake config            - Print the default configuration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Load configuration from a YAML file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--rows, --cols        - Override the board size
//	--obstacles <n>       - Override the obstacle count
//	--wrap                - Wrap at the board edges
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagRows       int
	flagCols       int
	flagObstacles  int
	flagWrap       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake is a terminal version of the classic grid game. Steer the
snake to the food, avoid walls, obstacles and your own tail.

Available commands:
  list     - Show the game variants
  play     - Play a run directly
  menu     - Settings menu with scoreboard
  serve    - Start SSH server for remote play
  scores   - View high scores
  demo     - Let the autopilot play headless
  config   - Print the default configuration

Examples:
  snake play
  snake play snake_wrap --rows 15 --cols 25
  snake menu --difficulty hard
  snake serve --ssh :2222
  snake demo --runs 5`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagRows, "rows", 0, "Board rows (10, 15, 20, 25 or 30)")
	pf.IntVar(&flagCols, "cols", 0, "Board columns (10, 15, 20, 25 or 30)")
	pf.IntVar(&flagObstacles, "obstacles", 0, "Obstacle count (0-15)")
	pf.BoolVar(&flagWrap, "wrap", false, "Wrap around the board edges")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSnakeConfig loads the YAML configuration and applies the difficulty
// preset and any board flags the user set explicitly.
func loadSnakeConfig(cmd *cobra.Command) (config.SnakeConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.SnakeConfig{}, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.SnakeConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Board.Rows = flagRows
	}
	if flags.Changed("cols") {
		cfg.Board.Cols = flagCols
	}
	if flags.Changed("obstacles") {
		cfg.Obstacles.Count = flagObstacles
	}
	if flags.Changed("wrap") {
		cfg.Board.EdgeWrapping = flagWrap
	}

	if err := cfg.Validate(); err != nil {
		return config.SnakeConfig{}, err
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the attached terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// variantFor returns the registered variant matching the wrap setting.
func variantFor(cfg config.SnakeConfig) string {
	if cfg.Board.EdgeWrapping {
		return snake.IDWrap
	}
	return snake.IDClassic
}
