package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dice/internal/game/dice"
)

func TestRange(t *testing.T) {
	cases := []struct {
		spec     string
		modifier int
		lo, hi   int
	}{
		{"3d6", 1, 4, 19},
		{"3d6", 0, 3, 18},
		{"3d6", 5, 8, 23},
		{"2d12", -2, 0, 22},
		{"1d20", 0, 1, 20},
		{"32d6", 0, 32, 192},
	}
	for _, tc := range cases {
		lo, hi := dice.Range(tc.spec, tc.modifier)
		assert.Equal(t, tc.lo, lo, "lo for %s%+d", tc.spec, tc.modifier)
		assert.Equal(t, tc.hi, hi, "hi for %s%+d", tc.spec, tc.modifier)
	}
}

func TestRange_DoesNotValidateFaces(t *testing.T) {
	lo, hi := dice.Range("1d7", 0)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 7, hi)

	lo, hi = dice.Range("2d100", 3)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 203, hi)
}

func TestRange_LiteralZeroQuantity(t *testing.T) {
	lo, hi := dice.Range("0d6", 2)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 2, hi)
}

func TestRange_NonIntegerTokensUseDefaults(t *testing.T) {
	lo, hi := dice.Range("", 0)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 20, hi)

	lo, hi = dice.Range("xd6", 1)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 7, hi)

	lo, hi = dice.Range("3dx", 0)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 60, hi)
}

func TestRange_IgnoresSurroundingWhitespace(t *testing.T) {
	lo, hi := dice.Range(" 2 d 8 ", 0)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 16, hi)
}

// TestProperty_RollWithinRange verifies every outcome of a valid-face roll
// lies within the bounds Range reports for the same spec.
func TestProperty_RollWithinRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		face := rapid.SampledFrom(dice.Faces).Draw(rt, "face")
		quantity := rapid.IntRange(1, 40).Draw(rt, "quantity")
		modifier := rapid.IntRange(-50, 50).Draw(rt, "modifier")
		seed := rapid.Int64().Draw(rt, "seed")

		spec := specString(quantity, int(face))
		r := dice.NewRoll(spec, modifier, dice.NewSeededSource(seed))
		lo, hi := dice.Range(spec, modifier)

		assert.GreaterOrEqual(rt, r.Result(), lo)
		assert.LessOrEqual(rt, r.Result(), hi)
	})
}

func TestRange_ClampsHugeTokens(t *testing.T) {
	lo, hi := dice.Range("9223372036854775807d20", 0)
	assert.Equal(t, dice.MaxQuantity, lo)
	assert.Equal(t, 20*dice.MaxQuantity, hi)

	lo, hi = dice.Range("1d99999999999999999999", 0)
	assert.Equal(t, 1, lo)
	assert.Equal(t, dice.MaxRangeFaces, hi)

	lo, hi = dice.Range("-99999999999999999999d6", 0)
	assert.Equal(t, -dice.MaxQuantity, lo)
	assert.Equal(t, -6*dice.MaxQuantity, hi)
}

func TestQuantity(t *testing.T) {
	cases := []struct {
		spec    string
		n       int
		clamped bool
	}{
		{"", 1, false},
		{"3d6", 3, false},
		{"0d6", 1, false},
		{"xd6", 1, false},
		{"1000d6", dice.MaxQuantity, false},
		{"1001d6", dice.MaxQuantity, true},
		{"999999999999999999999d6", dice.MaxQuantity, true},
	}
	for _, tc := range cases {
		n, clamped := dice.Quantity(tc.spec)
		assert.Equal(t, tc.n, n, "quantity for %q", tc.spec)
		assert.Equal(t, tc.clamped, clamped, "clamped for %q", tc.spec)
	}
}

func TestProperty_RangeOrdered(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		quantity := rapid.Int().Draw(rt, "quantity")
		faces := rapid.IntRange(1, 1<<62).Draw(rt, "faces")
		modifier := rapid.IntRange(-1000, 1000).Draw(rt, "modifier")

		lo, hi := dice.Range(specString(quantity, faces), modifier)
		if quantity >= 0 {
			assert.LessOrEqual(rt, lo, hi)
		} else {
			assert.GreaterOrEqual(rt, lo, hi)
		}
	})
}
