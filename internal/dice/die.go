package dice

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Die is a weighted outcome generator. Each face is drawn with probability
// weight(face) / sum(weights).
//
// Invariant: faces are distinct and of a single Kind; weights holds exactly
// one entry per face.
//
// A Die is not safe for concurrent mutation; ChangeWeight must not overlap a
// Roll on the same Die.
type Die struct {
	faces   []Face
	weights map[Face]float64
	src     Source
}

// DieOption configures a Die.
type DieOption func(*Die)

// WithSource makes the die draw from src instead of the process-wide Source.
func WithSource(src Source) DieOption {
	return func(d *Die) { d.src = src }
}

// NewDie creates a die with the given faces, each weighted 1.
//
// Precondition: faces must be non-empty, distinct, all of one Kind, and
// finite when numeric.
// Postcondition: Returns a Die or an error wrapping ErrInvalidInputType or
// ErrDuplicateFace.
func NewDie(faces []Face, opts ...DieOption) (*Die, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("no faces: %w", ErrInvalidInputType)
	}
	weights := make(map[Face]float64, len(faces))
	for i, f := range faces {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("face[%d]: %w", i, err)
		}
		if f.kind != faces[0].kind {
			return nil, fmt.Errorf("face[%d] %q: %w: faces must all be text or all be numbers", i, f, ErrInvalidInputType)
		}
		if _, dup := weights[f]; dup {
			return nil, fmt.Errorf("face %q: %w", f, ErrDuplicateFace)
		}
		weights[f] = 1
	}
	d := &Die{
		faces:   slices.Clone(faces),
		weights: weights,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewDieOf builds a die from an untyped face collection; see FacesOf.
func NewDieOf(values any, opts ...DieOption) (*Die, error) {
	faces, err := FacesOf(values)
	if err != nil {
		return nil, err
	}
	return NewDie(faces, opts...)
}

// Faces returns a copy of the die's faces in construction order.
func (d *Die) Faces() []Face {
	return slices.Clone(d.faces)
}

// Weight returns the current weight of face and whether the die has it.
func (d *Die) Weight(face Face) (float64, bool) {
	w, ok := d.weights[face]
	return w, ok
}

// ChangeWeight replaces the weight of a single face. Zero and negative weights
// are accepted; they remove the face from the draw.
//
// Postcondition: only face's weight changes, or an error wrapping
// ErrUnknownFace or ErrInvalidWeight is returned and nothing changes.
func (d *Die) ChangeWeight(face Face, weight float64) error {
	if _, ok := d.weights[face]; !ok {
		return fmt.Errorf("face %q: %w", face, ErrUnknownFace)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("face %q weight %v: %w", face, weight, ErrInvalidWeight)
	}
	d.weights[face] = weight
	return nil
}

// State returns an independent copy of the face to weight mapping.
func (d *Die) State() map[Face]float64 {
	return maps.Clone(d.weights)
}

// HasSameFaces reports whether o has exactly the faces of d, in any order.
func (d *Die) HasSameFaces(o *Die) bool {
	if len(d.faces) != len(o.faces) {
		return false
	}
	for _, f := range d.faces {
		if _, ok := o.weights[f]; !ok {
			return false
		}
	}
	return true
}

// Roll draws n faces independently with replacement. When every weight is
// non-negative a face is drawn with probability weight/sum(weights). Faces
// with zero or negative weight are never drawn, and the remaining faces are
// normalized over the sum of the positive weights only; the total of all
// weights must still be positive.
//
// Precondition: n >= 1.
// Postcondition: len(result) == n and every element is one of d's faces with
// positive weight; or an error wrapping ErrInvalidRollCount or
// ErrDegenerateWeights.
func (d *Die) Roll(n int) ([]Face, error) {
	if n < 1 {
		return nil, fmt.Errorf("roll count %d: %w", n, ErrInvalidRollCount)
	}
	var sum, positive float64
	for _, f := range d.faces {
		w := d.weights[f]
		sum += w
		if w > 0 {
			positive += w
		}
	}
	if sum <= 0 || positive <= 0 {
		return nil, fmt.Errorf("total weight %v: %w", sum, ErrDegenerateWeights)
	}

	src := d.src
	if src == nil {
		src = DefaultSource()
	}
	out := make([]Face, n)
	for i := range out {
		out[i] = d.draw(src.Float64() * positive)
	}
	return out, nil
}

// draw walks the cumulative weights until target falls inside a face's share.
// Faces with non-positive weight own no share and are never returned.
func (d *Die) draw(target float64) Face {
	last := -1
	for i, f := range d.faces {
		w := d.weights[f]
		if w <= 0 {
			continue
		}
		if target < w {
			return f
		}
		target -= w
		last = i
	}
	// Rounding can leave target just past the final share.
	return d.faces[last]
}

// WeightOf converts a decoded configuration value into a weight.
//
// Postcondition: Returns a finite float64, or an error wrapping ErrInvalidWeight.
func WeightOf(v any) (float64, error) {
	w, ok := numberOf(v)
	if !ok {
		return 0, fmt.Errorf("%T %v: %w", v, v, ErrInvalidWeight)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, fmt.Errorf("%v: %w", w, ErrInvalidWeight)
	}
	return w, nil
}
