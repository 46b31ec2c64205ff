// Package game rolls a set of dice together and keeps the results table of
// the most recent play.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/report"
)

// Game rolls an ordered set of dice that share one face set.
//
// The game holds references to its dice: weight changes made to a die are
// seen by the next Play. A Game is not safe for concurrent use.
type Game struct {
	dice    []*dice.Die
	logger  *zap.Logger
	results Table
	runID   string
}

// Option configures a Game.
type Option func(*Game)

// WithLogger logs each play to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// NewGame creates a game over ds.
//
// Precondition: ds must be non-empty, hold no nil dice, and every die must
// have the first die's faces (in any order).
// Postcondition: Returns a Game with no results, or an error wrapping
// ErrInvalidDiceList or ErrFaceSetMismatch.
func NewGame(ds []*dice.Die, opts ...Option) (*Game, error) {
	if len(ds) == 0 {
		return nil, fmt.Errorf("empty dice list: %w", ErrInvalidDiceList)
	}
	for i, d := range ds {
		if d == nil {
			return nil, fmt.Errorf("die %d is nil: %w", i, ErrInvalidDiceList)
		}
	}
	first := ds[0]
	for i, d := range ds[1:] {
		if !first.HasSameFaces(d) {
			return nil, fmt.Errorf("die %d faces %v differ from die 0 faces %v: %w",
				i+1, d.Faces(), first.Faces(), ErrFaceSetMismatch)
		}
	}

	g := &Game{
		dice:   append([]*dice.Die(nil), ds...),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Dice returns the game's dice in column order.
func (g *Game) Dice() []*dice.Die {
	return append([]*dice.Die(nil), g.dice...)
}

// Faces returns the first die's faces, which every die in the game shares.
func (g *Game) Faces() []dice.Face {
	return g.dice[0].Faces()
}

// RunID identifies the most recent successful play, or "" before the first.
func (g *Game) RunID() string {
	return g.runID
}

// Play rolls every die once per round for n rounds.
//
// Precondition: n >= 1.
// Postcondition: On success the stored results are replaced by a table of n
// rows and len(Dice()) columns and a copy is returned. On failure the stored
// results are untouched.
func (g *Game) Play(n int) (Table, error) {
	if n < 1 {
		return nil, fmt.Errorf("playing %d rolls: %w", n, dice.ErrInvalidRollCount)
	}
	start := time.Now()

	columns := make([][]dice.Face, len(g.dice))
	for i, d := range g.dice {
		rolled, err := d.Roll(n)
		if err != nil {
			return nil, fmt.Errorf("rolling die %d: %w", i, err)
		}
		columns[i] = rolled
	}

	table := make(Table, n)
	for r := range table {
		row := make([]dice.Face, len(columns))
		for d, col := range columns {
			row[d] = col[r]
		}
		table[r] = row
	}

	g.results = table
	g.runID = uuid.NewString()
	g.logger.Debug("game played",
		zap.String("run_id", g.runID),
		zap.Int("rolls", n),
		zap.Int("dice", len(g.dice)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return table.Clone(), nil
}

// Wide returns a copy of the stored results table.
//
// Postcondition: Returns the table or an error wrapping ErrNoResults.
func (g *Game) Wide() (Table, error) {
	if g.results == nil {
		return nil, ErrNoResults
	}
	return g.results.Clone(), nil
}

// Narrow returns the stored results in long format.
//
// Postcondition: Returns one Observation per cell or an error wrapping ErrNoResults.
func (g *Game) Narrow() (Narrow, error) {
	if g.results == nil {
		return nil, ErrNoResults
	}
	return g.results.Narrow(), nil
}

// Results returns the stored results in the requested shape.
//
// Postcondition: Returns a Table for FormatWide or a Narrow for FormatNarrow;
// an unknown format fails with ErrInvalidFormat before the results are read,
// and a game that has not been played fails with ErrNoResults.
func (g *Game) Results(format Format) (report.Frame, error) {
	if format != FormatWide && format != FormatNarrow {
		return nil, fmt.Errorf("%v: %w", format, ErrInvalidFormat)
	}
	if g.results == nil {
		return nil, ErrNoResults
	}
	if format == FormatNarrow {
		return g.results.Narrow(), nil
	}
	return g.results.Clone(), nil
}
