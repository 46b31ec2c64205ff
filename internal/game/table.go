package game

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cory-johannsen/montecarlo/internal/dice"
)

// Format selects the shape returned by Game.Results.
type Format int

const (
	// FormatWide has one row per roll and one column per die.
	FormatWide Format = iota
	// FormatNarrow has one row per (roll, die) pair.
	FormatNarrow
)

// String returns "wide" or "narrow"; unknown values print as "Format(n)".
func (f Format) String() string {
	switch f {
	case FormatWide:
		return "wide"
	case FormatNarrow:
		return "narrow"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat maps "wide", "narrow", or "" (wide) to a Format.
//
// Postcondition: Returns a valid Format or an error wrapping ErrInvalidFormat.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "wide":
		return FormatWide, nil
	case "narrow":
		return FormatNarrow, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}
}

// Table is the wide results table: row i holds the faces rolled in round i,
// column j the face shown by die j.
//
// Invariant: every row has the same length.
type Table [][]dice.Face

// Rolls returns the number of rounds in the table.
func (t Table) Rolls() int { return len(t) }

// Dice returns the number of dice columns, or 0 for an empty table.
func (t Table) Dice() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for i, row := range t {
		out[i] = slices.Clone(row)
	}
	return out
}

// Narrow reshapes t into one observation per cell, ordered by roll then die.
func (t Table) Narrow() Narrow {
	out := make(Narrow, 0, t.Rolls()*t.Dice())
	for r, row := range t {
		for d, f := range row {
			out = append(out, Observation{Roll: r, Die: d, Face: f})
		}
	}
	return out
}

// Columns names the header row: "Roll" followed by each die index.
func (t Table) Columns() []string {
	cols := make([]string, 0, t.Dice()+1)
	cols = append(cols, "Roll")
	for d := 0; d < t.Dice(); d++ {
		cols = append(cols, strconv.Itoa(d))
	}
	return cols
}

// Records renders every row as strings, prefixed by its roll index.
func (t Table) Records() [][]string {
	out := make([][]string, len(t))
	for r, row := range t {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.Itoa(r))
		for _, f := range row {
			rec = append(rec, f.String())
		}
		out[r] = rec
	}
	return out
}

// Observation is a single die's face in a single round.
type Observation struct {
	Roll int
	Die  int
	Face dice.Face
}

// Narrow is the long-format results table keyed by (Roll, Die).
type Narrow []Observation

// Columns names the header row.
func (n Narrow) Columns() []string {
	return []string{"Roll", "Die", "Face"}
}

// Records renders every observation as strings.
func (n Narrow) Records() [][]string {
	out := make([][]string, len(n))
	for i, o := range n {
		out[i] = []string{strconv.Itoa(o.Roll), strconv.Itoa(o.Die), o.Face.String()}
	}
	return out
}
