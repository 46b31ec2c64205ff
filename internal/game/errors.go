package game

import "errors"

var (
	// ErrInvalidDiceList is returned when a game is built from an empty list or one holding a nil die.
	ErrInvalidDiceList = errors.New("game: dice list must be non-empty and hold no nil dice")
	// ErrFaceSetMismatch is returned when dice in a game do not share one face set.
	ErrFaceSetMismatch = errors.New("game: dice must all have the same faces")
	// ErrInvalidFormat is returned for a results format other than wide or narrow.
	ErrInvalidFormat = errors.New("game: format must be wide or narrow")
	// ErrNoResults is returned when results are requested before the first Play.
	ErrNoResults = errors.New("game: no results; call Play first")
)
