package dice

import "errors"

var (
	// ErrInvalidInputType is returned when a face collection is not all text or all numbers.
	ErrInvalidInputType = errors.New("dice: faces must be a non-empty collection of strings or numbers")
	// ErrDuplicateFace is returned when a die is built with a repeated face.
	ErrDuplicateFace = errors.New("dice: duplicate face")
	// ErrUnknownFace is returned when a weight is changed for a face the die does not have.
	ErrUnknownFace = errors.New("dice: unknown face")
	// ErrInvalidWeight is returned for NaN, infinite, or non-numeric weights.
	ErrInvalidWeight = errors.New("dice: weight must be a finite number")
	// ErrDegenerateWeights is returned when a die's weights do not sum to a positive total.
	ErrDegenerateWeights = errors.New("dice: weights must sum to a positive total")
	// ErrInvalidRollCount is returned when a roll count is not a positive integer.
	ErrInvalidRollCount = errors.New("dice: roll count must be >= 1")
)
