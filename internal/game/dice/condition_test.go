package dice_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dice/internal/game/dice"
)

func TestParseCondition_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Condition
	}{
		{"3", dice.Condition{Op: dice.OpEqual, Value: 3}},
		{"=6", dice.Condition{Op: dice.OpEqual, Value: 6}},
		{">3", dice.Condition{Op: dice.OpGreater, Value: 3}},
		{"<2", dice.Condition{Op: dice.OpLess, Value: 2}},
		{">=5", dice.Condition{Op: dice.OpGreaterEqual, Value: 5}},
		{"<=4", dice.Condition{Op: dice.OpLessEqual, Value: 4}},
		{" >= 12 ", dice.Condition{Op: dice.OpGreaterEqual, Value: 12}},
		{"<-1", dice.Condition{Op: dice.OpLess, Value: -1}},
		{"+7", dice.Condition{Op: dice.OpEqual, Value: 7}},
	}
	for _, tc := range cases {
		got, err := dice.ParseCondition(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseCondition_Invalid(t *testing.T) {
	for _, in := range []string{"", " ", ">", "abc", "==3", "=>3", "!=3", ">3x", "3.5", "x>3", "1; os.exit()", "99999999999999999999999"} {
		_, err := dice.ParseCondition(in)
		assert.True(t, errors.Is(err, dice.ErrInvalidCondition), "input %q must be rejected, got %v", in, err)
	}
}

func TestCondition_Match(t *testing.T) {
	cases := []struct {
		cond string
		v    int
		want bool
	}{
		{"3", 3, true},
		{"3", 4, false},
		{">3", 4, true},
		{">3", 3, false},
		{"<3", 2, true},
		{"<3", 3, false},
		{">=3", 3, true},
		{">=3", 2, false},
		{"<=3", 3, true},
		{"<=3", 4, false},
	}
	for _, tc := range cases {
		c, err := dice.ParseCondition(tc.cond)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.Match(tc.v), "%s against %d", tc.cond, tc.v)
	}
}

func TestCondition_UnknownOperatorNeverMatches(t *testing.T) {
	c := dice.Condition{Op: dice.Operator(99), Value: 1}
	assert.False(t, c.Match(1))
	assert.Equal(t, "?1", c.String())
}

func TestCondition_String(t *testing.T) {
	c, err := dice.ParseCondition("4")
	require.NoError(t, err)
	assert.Equal(t, "=4", c.String())

	c, err = dice.ParseCondition(" <= 2")
	require.NoError(t, err)
	assert.Equal(t, "<=2", c.String())
}

// TestProperty_Condition_StringRoundTrips verifies the canonical form parses
// back to the same condition.
func TestProperty_Condition_StringRoundTrips(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		op := rapid.SampledFrom([]string{">", "<", ">=", "<=", "=", ""}).Draw(rt, "op")
		v := rapid.IntRange(-1000, 1000).Draw(rt, "v")

		c, err := dice.ParseCondition(op + strconv.Itoa(v))
		require.NoError(rt, err)
		again, err := dice.ParseCondition(c.String())
		require.NoError(rt, err)
		assert.Equal(rt, c, again)
	})
}
