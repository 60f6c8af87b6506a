package dice

import (
	"fmt"
	"regexp"
	"strconv"
)

// Operator is a comparison applied between an outcome and a condition literal.
type Operator int

const (
	OpEqual Operator = iota
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
)

// String returns the operator token.
func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	default:
		return "?"
	}
}

// Condition selects outcomes by comparing them against Value.
type Condition struct {
	Op    Operator
	Value int
}

var conditionPattern = regexp.MustCompile(`^\s*(>=|<=|>|<|=)?\s*([+-]?\d+)\s*$`)

// ParseCondition parses an optional operator (">", "<", ">=", "<=", "=")
// followed by an integer literal, e.g. ">3", "<=2", "6". A missing operator
// means equality.
//
// Postcondition: Returns a Condition or an error wrapping ErrInvalidCondition.
func ParseCondition(s string) (Condition, error) {
	m := conditionPattern.FindStringSubmatch(s)
	if m == nil {
		return Condition{}, fmt.Errorf("%w: %q", ErrInvalidCondition, s)
	}
	v, err := strconv.Atoi(m[2])
	if err != nil {
		return Condition{}, fmt.Errorf("%w: %q: %w", ErrInvalidCondition, s, err)
	}

	var op Operator
	switch m[1] {
	case "", "=":
		op = OpEqual
	case ">":
		op = OpGreater
	case "<":
		op = OpLess
	case ">=":
		op = OpGreaterEqual
	case "<=":
		op = OpLessEqual
	}
	return Condition{Op: op, Value: v}, nil
}

// Match reports whether v satisfies the condition.
func (c Condition) Match(v int) bool {
	switch c.Op {
	case OpEqual:
		return v == c.Value
	case OpGreater:
		return v > c.Value
	case OpLess:
		return v < c.Value
	case OpGreaterEqual:
		return v >= c.Value
	case OpLessEqual:
		return v <= c.Value
	default:
		return false
	}
}

// String returns the canonical form of the condition, e.g. ">=5".
func (c Condition) String() string {
	return c.Op.String() + strconv.Itoa(c.Value)
}
