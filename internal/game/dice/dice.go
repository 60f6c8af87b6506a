// Package dice provides the roll value object, the randomness sources that feed
// it, and the condition grammar used to filter roll outcomes.
//
// Specification strings have the form "<quantity>d<faces>". Parsing is
// permissive: NewRoll never fails, and malformed input degrades to a single d20.
package dice

import (
	"errors"
	"fmt"
)

// Face is the number of sides on a die.
type Face int

// Supported dice.
const (
	D4  Face = 4
	D6  Face = 6
	D8  Face = 8
	D10 Face = 10
	D12 Face = 12
	D20 Face = 20
)

// DefaultFace replaces any unsupported face count at roll construction.
const DefaultFace = D20

// DefaultSpec is rolled when NewRoll receives an empty specification.
const DefaultSpec = "1d20"

// Faces lists every supported die in ascending order.
var Faces = []Face{D4, D6, D8, D10, D12, D20}

// Valid reports whether f is one of the supported dice.
func (f Face) Valid() bool {
	switch f {
	case D4, D6, D8, D10, D12, D20:
		return true
	}
	return false
}

// String returns the conventional die name, e.g. "d6".
func (f Face) String() string {
	return fmt.Sprintf("d%d", int(f))
}

var (
	// ErrInvalidCondition is returned when a condition string has no
	// recognizable operator and integer literal.
	ErrInvalidCondition = errors.New("dice: invalid condition")

	// ErrInvalidResults is returned by NewRollFromResults when the supplied
	// outcomes cannot belong to the named die.
	ErrInvalidResults = errors.New("dice: invalid results")
)

// Source is the randomness provider for dice rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
