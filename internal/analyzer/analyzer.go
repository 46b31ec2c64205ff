// Package analyzer derives statistics from a game's results table.
package analyzer

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cory-johannsen/montecarlo/internal/dice"
	"github.com/cory-johannsen/montecarlo/internal/game"
)

// ErrNotAGame is returned when an Analyzer is built without a game.
var ErrNotAGame = errors.New("analyzer: a game is required")

// Analyzer reads a game's current results on every query; nothing is cached.
type Analyzer struct {
	game *game.Game
}

// New creates an Analyzer over g.
//
// Postcondition: Returns an Analyzer or an error wrapping ErrNotAGame if g is nil.
func New(g *game.Game) (*Analyzer, error) {
	if g == nil {
		return nil, ErrNotAGame
	}
	return &Analyzer{game: g}, nil
}

func (a *Analyzer) table() (game.Table, error) {
	t, err := a.game.Wide()
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	return t, nil
}

// Jackpots flags each round in which every die shows the first die's face.
func (a *Analyzer) Jackpots() ([]bool, error) {
	t, err := a.table()
	if err != nil {
		return nil, err
	}
	flags := make([]bool, len(t))
	for r, row := range t {
		flags[r] = isJackpot(row)
	}
	return flags, nil
}

func isJackpot(row []dice.Face) bool {
	for _, f := range row[1:] {
		if f != row[0] {
			return false
		}
	}
	return true
}

// Jackpot counts the rounds in which every die shows the same face.
//
// Postcondition: 0 <= result <= number of rounds.
func (a *Analyzer) Jackpot() (int, error) {
	flags, err := a.Jackpots()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, hit := range flags {
		if hit {
			n++
		}
	}
	return n, nil
}

// FaceCounts is a per-round tally: Counts[r][i] is how many dice showed
// Faces[i] in round r.
//
// Invariant: every row of Counts sums to the number of dice.
type FaceCounts struct {
	Faces  []dice.Face
	Counts [][]int
}

// Columns names the header row: "Roll" followed by each face.
func (fc FaceCounts) Columns() []string {
	cols := make([]string, 0, len(fc.Faces)+1)
	cols = append(cols, "Roll")
	for _, f := range fc.Faces {
		cols = append(cols, f.String())
	}
	return cols
}

// Records renders each round's counts.
func (fc FaceCounts) Records() [][]string {
	out := make([][]string, len(fc.Counts))
	for r, row := range fc.Counts {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.Itoa(r))
		for _, c := range row {
			rec = append(rec, strconv.Itoa(c))
		}
		out[r] = rec
	}
	return out
}

// FaceCounts counts, for every round, how many dice landed on each face of
// the game. Faces nobody rolled in a round count as 0.
func (a *Analyzer) FaceCounts() (FaceCounts, error) {
	t, err := a.table()
	if err != nil {
		return FaceCounts{}, err
	}
	faces := a.game.Faces()
	column := make(map[dice.Face]int, len(faces))
	for i, f := range faces {
		column[f] = i
	}

	counts := make([][]int, len(t))
	for r, row := range t {
		tally := make([]int, len(faces))
		for _, f := range row {
			tally[column[f]]++
		}
		counts[r] = tally
	}
	return FaceCounts{Faces: faces, Counts: counts}, nil
}

// Tally is one distinct face tuple and the number of rounds that produced it.
type Tally struct {
	Faces []dice.Face
	Count int
}

// Key formats the tuple as "(a, b, c)".
func (t Tally) Key() string {
	parts := make([]string, len(t.Faces))
	for i, f := range t.Faces {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Tallies is a frequency table of face tuples in ascending tuple order.
//
// Invariant: the counts sum to the number of rounds tallied.
type Tallies struct {
	// Label heads the tuple column, "Combination" or "Permutation".
	Label string
	Rows  []Tally
}

// Total returns the sum of all counts.
func (ts Tallies) Total() int {
	n := 0
	for _, t := range ts.Rows {
		n += t.Count
	}
	return n
}

// Count returns the count recorded for faces, or 0 if the tuple never occurred.
func (ts Tallies) Count(faces ...dice.Face) int {
	i, found := slices.BinarySearchFunc(ts.Rows, faces, func(t Tally, target []dice.Face) int {
		return dice.CompareTuples(t.Faces, target)
	})
	if !found {
		return 0
	}
	return ts.Rows[i].Count
}

// Columns names the header row.
func (ts Tallies) Columns() []string {
	return []string{ts.Label, "Count"}
}

// Records renders each tuple and its count.
func (ts Tallies) Records() [][]string {
	out := make([][]string, len(ts.Rows))
	for i, t := range ts.Rows {
		out[i] = []string{t.Key(), strconv.Itoa(t.Count)}
	}
	return out
}

// ComboCount groups rounds by their faces ignoring die order, so (H, T) and
// (T, H) are one combination.
func (a *Analyzer) ComboCount() (Tallies, error) {
	t, err := a.table()
	if err != nil {
		return Tallies{}, err
	}
	return tally("Combination", t, true), nil
}

// PermCount groups rounds by their faces in die order.
func (a *Analyzer) PermCount() (Tallies, error) {
	t, err := a.table()
	if err != nil {
		return Tallies{}, err
	}
	return tally("Permutation", t, false), nil
}

// tally groups rows of t by tuple. When sorted is set each row is put in
// ascending face order first.
func tally(label string, t game.Table, sorted bool) Tallies {
	index := make(map[string]int)
	var rows []Tally
	for _, row := range t {
		key := slices.Clone(row)
		if sorted {
			slices.SortFunc(key, dice.Face.Compare)
		}
		k := tupleKey(key)
		if i, ok := index[k]; ok {
			rows[i].Count++
			continue
		}
		index[k] = len(rows)
		rows = append(rows, Tally{Faces: key, Count: 1})
	}
	slices.SortFunc(rows, func(a, b Tally) int {
		return dice.CompareTuples(a.Faces, b.Faces)
	})
	return Tallies{Label: label, Rows: rows}
}

// tupleKey builds a map key for a face tuple. The kind prefix keeps the text
// face "1" apart from the number 1.
func tupleKey(faces []dice.Face) string {
	var b strings.Builder
	for _, f := range faces {
		if f.IsNumber() {
			b.WriteByte('n')
		} else {
			b.WriteByte('s')
		}
		b.WriteString(strconv.Quote(f.String()))
	}
	return b.String()
}
