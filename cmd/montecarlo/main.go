// Package main provides a command-line driver that plays a dice set and
// prints its results and statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/montecarlo/internal/analyzer"
	"github.com/cory-johannsen/montecarlo/internal/config"
	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
	"github.com/cory-johannsen/montecarlo/internal/observability"
	"github.com/cory-johannsen/montecarlo/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	start := time.Now()

	fs := flag.NewFlagSet("montecarlo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to configuration file; empty = defaults and environment only")
	diceFile := fs.String("dice", "", "path to dice-set YAML file (overrides simulation.dice_file)")
	rolls := fs.Int("rolls", 0, "number of rounds to play (overrides simulation.rolls)")
	seed := fs.Uint64("seed", 0, "seed for reproducible rolls (overrides simulation.seed)")
	format := fs.String("format", "", "results shape: wide or narrow (overrides simulation.format)")
	output := fs.String("output", "", "table or csv (overrides simulation.output)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dice":
			cfg.Simulation.DiceFile = *diceFile
		case "rolls":
			cfg.Simulation.Rolls = *rolls
		case "seed":
			cfg.Simulation.Seed = *seed
		case "format":
			cfg.Simulation.Format = *format
		case "output":
			cfg.Simulation.Output = *output
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	sim := cfg.Simulation
	if sim.Seeded() {
		dice.Seed(sim.Seed)
		logger.Info("seeded dice source", zap.Uint64("seed", sim.Seed))
	}

	defs, err := dice.LoadSetFromFile(sim.DiceFile)
	if err != nil {
		return fmt.Errorf("loading dice set: %w", err)
	}
	var ds []*dice.Die
	for _, def := range defs {
		built, err := def.Build()
		if err != nil {
			return err
		}
		ds = append(ds, built...)
	}
	logger.Info("dice loaded",
		zap.String("file", sim.DiceFile),
		zap.Int("definitions", len(defs)),
		zap.Int("dice", len(ds)),
	)

	g, err := game.NewGame(ds, game.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if _, err := g.Play(sim.Rolls); err != nil {
		return fmt.Errorf("playing game: %w", err)
	}

	shape, err := game.ParseFormat(sim.Format)
	if err != nil {
		return err
	}
	results, err := g.Results(shape)
	if err != nil {
		return err
	}

	a, err := analyzer.New(g)
	if err != nil {
		return err
	}
	jackpots, err := a.Jackpot()
	if err != nil {
		return err
	}
	faceCounts, err := a.FaceCounts()
	if err != nil {
		return err
	}
	combos, err := a.ComboCount()
	if err != nil {
		return err
	}
	perms, err := a.PermCount()
	if err != nil {
		return err
	}

	r, err := report.NewRenderer(stdout, report.Output(sim.Output))
	if err != nil {
		return err
	}
	frames := []struct {
		title string
		frame report.Frame
	}{
		{fmt.Sprintf("Results (%s)", shape), results},
		{"Face counts", faceCounts},
		{"Combinations", combos},
		{"Permutations", perms},
	}
	for _, f := range frames {
		if err := r.Frame(f.title, f.frame); err != nil {
			return fmt.Errorf("rendering %s: %w", f.title, err)
		}
	}
	if err := r.Jackpot(jackpots, sim.Rolls); err != nil {
		return err
	}

	logger.Info("simulation complete",
		zap.String("run_id", g.RunID()),
		zap.Int("rolls", sim.Rolls),
		zap.Int("jackpots", jackpots),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
