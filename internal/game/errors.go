package game

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the advisory signal for user input the round rejected.
// State is left unchanged; presentation layers typically shake the board.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrSecretMalformed       = fmt.Errorf("%w: secret must be letters A-Z", ErrInvalidInput)
	ErrSecretLength          = fmt.Errorf("%w: secret has the wrong length", ErrInvalidInput)
	ErrSecretNotInDictionary = fmt.Errorf("%w: secret not in word list", ErrInvalidInput)
	ErrIncompleteGuess       = fmt.Errorf("%w: guess row is incomplete", ErrInvalidInput)
	ErrGuessNotInDictionary  = fmt.Errorf("%w: not in word list", ErrInvalidInput)
	ErrDictionaryEmpty       = fmt.Errorf("%w: no words of this length", ErrInvalidInput)
)

var (
	ErrWrongPhase        = errors.New("action not allowed in current phase")
	ErrRevealInProgress  = errors.New("reveal in progress")
	ErrStaleReveal       = errors.New("stale reveal")
	ErrNotALetter        = errors.New("not a letter")
	ErrUnsupportedLength = errors.New("unsupported word length")
)

// IsInvalidInput reports whether err is an invalid-input signal.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
