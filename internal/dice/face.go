// Package dice provides face labels, the randomness abstraction, and the
// weighted die used by the Monte Carlo simulator.
package dice

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which label family a Face belongs to.
type Kind int

const (
	// KindText is a string label, e.g. "H".
	KindText Kind = iota
	// KindNumber is a numeric label, e.g. 6.
	KindNumber
)

// Face is a single outcome label. The zero value is the empty text face.
//
// Invariant: Face is comparable and may be used as a map key.
type Face struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text face.
func Text(s string) Face {
	return Face{kind: KindText, text: s}
}

// Number returns a numeric face. Dice reject NaN and infinite faces; integers
// are exact only up to 2^53 in magnitude.
func Number(n float64) Face {
	return Face{kind: KindNumber, num: n}
}

// maxExactInt bounds the integers a float64 represents exactly.
const maxExactInt = 1 << 53

// validate returns an error unless f can label a die face. NaN is never equal to
// itself, so it could not be found again or checked for duplicates.
func (f Face) validate() error {
	if f.kind == KindNumber && (math.IsNaN(f.num) || math.IsInf(f.num, 0)) {
		return fmt.Errorf("face %v: %w: numeric faces must be finite", f.num, ErrInvalidInputType)
	}
	return nil
}

// intFace converts an integer label, rejecting magnitudes float64 cannot hold exactly.
func intFace(n int64) (Face, error) {
	if n > maxExactInt || n < -maxExactInt {
		return Face{}, fmt.Errorf("face %d: %w: integer faces must be within ±2^53", n, ErrInvalidInputType)
	}
	return Number(float64(n)), nil
}

// Kind reports the label family of f.
func (f Face) Kind() Kind { return f.kind }

// IsNumber reports whether f is a numeric face.
func (f Face) IsNumber() bool { return f.kind == KindNumber }

// Value returns the face as a string or a float64.
func (f Face) Value() any {
	if f.kind == KindNumber {
		return f.num
	}
	return f.text
}

// String formats numeric faces without a trailing ".0" so 6 prints as "6".
func (f Face) String() string {
	if f.kind == KindNumber {
		return strconv.FormatFloat(f.num, 'f', -1, 64)
	}
	return f.text
}

// Compare orders faces: numbers numerically, text lexically, numbers before text.
//
// Postcondition: returns -1, 0 or +1.
func (f Face) Compare(o Face) int {
	if f.kind != o.kind {
		return cmp.Compare(o.kind, f.kind)
	}
	if f.kind == KindNumber {
		return cmp.Compare(f.num, o.num)
	}
	return cmp.Compare(f.text, o.text)
}

// CompareTuples orders face tuples lexicographically, shorter first on a tie.
func CompareTuples(a, b []Face) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// FacesOf converts a homogeneous collection of strings or numbers into faces.
//
// Accepted inputs: []Face, []string, []int, []int64, []float64, and []any
// whose elements are all strings or all numbers (as decoded from YAML).
//
// Postcondition: Returns faces in input order, or an error wrapping
// ErrInvalidInputType.
func FacesOf(values any) ([]Face, error) {
	var out []Face
	switch vs := values.(type) {
	case []Face:
		out = make([]Face, len(vs))
		copy(out, vs)
	case []string:
		out = make([]Face, len(vs))
		for i, v := range vs {
			out[i] = Text(v)
		}
	case []int:
		out = make([]Face, len(vs))
		for i, v := range vs {
			f, err := intFace(int64(v))
			if err != nil {
				return nil, fmt.Errorf("face[%d]: %w", i, err)
			}
			out[i] = f
		}
	case []int64:
		out = make([]Face, len(vs))
		for i, v := range vs {
			f, err := intFace(v)
			if err != nil {
				return nil, fmt.Errorf("face[%d]: %w", i, err)
			}
			out[i] = f
		}
	case []float64:
		out = make([]Face, len(vs))
		for i, v := range vs {
			out[i] = Number(v)
		}
	case []any:
		out = make([]Face, len(vs))
		for i, v := range vs {
			f, err := faceOf(v)
			if err != nil {
				return nil, fmt.Errorf("face[%d]: %w", i, err)
			}
			if i > 0 && f.kind != out[0].kind {
				return nil, fmt.Errorf("face[%d] %v: %w: faces must all be text or all be numbers", i, v, ErrInvalidInputType)
			}
			out[i] = f
		}
	default:
		return nil, fmt.Errorf("%T: %w", values, ErrInvalidInputType)
	}
	for i, f := range out {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("face[%d]: %w", i, err)
		}
	}
	return out, nil
}

func faceOf(v any) (Face, error) {
	switch x := v.(type) {
	case Face:
		return x, nil
	case string:
		return Text(x), nil
	case int:
		return intFace(int64(x))
	case int64:
		return intFace(x)
	case uint:
		if uint64(x) > maxExactInt {
			return Face{}, fmt.Errorf("face %d: %w: integer faces must be within ±2^53", x, ErrInvalidInputType)
		}
		return Number(float64(x)), nil
	case uint64:
		if x > maxExactInt {
			return Face{}, fmt.Errorf("face %d: %w: integer faces must be within ±2^53", x, ErrInvalidInputType)
		}
		return Number(float64(x)), nil
	default:
		n, ok := numberOf(v)
		if !ok {
			return Face{}, fmt.Errorf("%T: %w", v, ErrInvalidInputType)
		}
		return Number(n), nil
	}
}

// numberOf reports v as a float64 when v is any Go numeric type.
func numberOf(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
