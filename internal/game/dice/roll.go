package dice

import (
	"fmt"
	"slices"
)

// Roll is a single dice-roll event: the outcomes drawn for a specification and
// their modified total.
//
// Invariant: every element of results is in [1, faces].
// Invariant: result == sum(results) + modifier.
// A Roll is never mutated after construction; accessors return copies.
type Roll struct {
	spec     string
	faces    Face
	modifier int
	results  []int
	result   int
}

// NewRoll parses spec, draws the requested outcomes from src, and returns the
// resulting Roll. An empty spec rolls DefaultSpec; a nil src uses the default
// source.
//
// Parsing never fails. A face count outside the supported dice becomes d20;
// a missing, malformed, or non-positive quantity becomes 1; a quantity above
// MaxQuantity becomes MaxQuantity.
//
// Postcondition: Len() >= 1 and Result() == sum(Results()) + modifier.
func NewRoll(spec string, modifier int, src Source) *Roll {
	if spec == "" {
		spec = DefaultSpec
	}
	if src == nil {
		src = defaultSource
	}
	q, f := splitSpec(spec)
	faces := parseFace(f)
	quantity, _ := parseQuantity(q)
	results := make([]int, quantity)
	for i := range results {
		results[i] = RollDieFrom(src, int(faces))
	}
	return newRoll(spec, faces, modifier, results)
}

// NewRollFromResults rebuilds a Roll from outcomes that were already drawn.
// An empty spec is derived from the results, e.g. "3d6".
//
// Precondition: faces is a supported die and every result is in [1, faces].
// Postcondition: Returns a Roll or an error wrapping ErrInvalidResults.
func NewRollFromResults(spec string, faces, modifier int, results []int) (*Roll, error) {
	f := Face(faces)
	if !f.Valid() {
		return nil, fmt.Errorf("%w: unsupported face count %d", ErrInvalidResults, faces)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: at least one result is required", ErrInvalidResults)
	}
	for i, v := range results {
		if v < 1 || v > faces {
			return nil, fmt.Errorf("%w: result[%d] = %d is outside [1, %d]", ErrInvalidResults, i, v, faces)
		}
	}
	if spec == "" {
		spec = fmt.Sprintf("%dd%d", len(results), faces)
	}
	return newRoll(spec, f, modifier, slices.Clone(results)), nil
}

func newRoll(spec string, faces Face, modifier int, results []int) *Roll {
	total := modifier
	for _, v := range results {
		total += v
	}
	return &Roll{
		spec:     spec,
		faces:    faces,
		modifier: modifier,
		results:  results,
		result:   total,
	}
}

// Spec returns the specification string the roll was made from.
func (r *Roll) Spec() string { return r.spec }

// Faces returns the face count of every die in the roll.
func (r *Roll) Faces() int { return int(r.faces) }

// Modifier returns the flat modifier added to the outcomes.
func (r *Roll) Modifier() int { return r.modifier }

// Result returns sum(Results()) + Modifier().
func (r *Roll) Result() int { return r.result }

// Results returns a copy of the outcomes in generation order.
func (r *Roll) Results() []int { return slices.Clone(r.results) }

// Len returns the number of outcomes.
func (r *Roll) Len() int { return len(r.results) }

// Min returns the smallest outcome, or 0 when the roll has none.
func (r *Roll) Min() int {
	if len(r.results) == 0 {
		return 0
	}
	return slices.Min(r.results)
}

// Max returns the largest outcome, or 0 when the roll has none.
func (r *Roll) Max() int {
	if len(r.results) == 0 {
		return 0
	}
	return slices.Max(r.results)
}

// Count returns the number of occurrences of every face in [1, Faces()].
// Faces that were not rolled map to 0.
//
// Postcondition: the values sum to Len().
func (r *Roll) Count() map[int]int {
	counts := make(map[int]int, int(r.faces))
	for face := 1; face <= int(r.faces); face++ {
		counts[face] = 0
	}
	for _, v := range r.results {
		counts[v]++
	}
	return counts
}

// CountFace returns how many outcomes equal face. Faces outside [1, Faces()]
// count 0.
func (r *Roll) CountFace(face int) int {
	if face < 1 || face > int(r.faces) {
		return 0
	}
	n := 0
	for _, v := range r.results {
		if v == face {
			n++
		}
	}
	return n
}

// CountWhere returns how many outcomes satisfy cond.
//
// Postcondition: Returns an error wrapping ErrInvalidCondition if cond does
// not parse.
func (r *Roll) CountWhere(cond string) (int, error) {
	c, err := ParseCondition(cond)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range r.results {
		if c.Match(v) {
			n++
		}
	}
	return n, nil
}

// Where returns a new Roll holding only the outcomes that satisfy cond, in
// their original order. Faces, modifier and spec are carried over and the
// result is recomputed from the kept outcomes. The returned Roll may be empty.
// Successive calls compose as a logical AND.
//
// Postcondition: Returns an error wrapping ErrInvalidCondition if cond does
// not parse; r is never modified.
func (r *Roll) Where(cond string) (*Roll, error) {
	c, err := ParseCondition(cond)
	if err != nil {
		return nil, err
	}
	return r.Filter(c), nil
}

// Filter is Where for an already parsed Condition.
func (r *Roll) Filter(c Condition) *Roll {
	kept := make([]int, 0, len(r.results))
	for _, v := range r.results {
		if c.Match(v) {
			kept = append(kept, v)
		}
	}
	return newRoll(r.spec, r.faces, r.modifier, kept)
}

// String returns a human-readable audit string in the format:
//
//	"3d6 → [4 5 2] +1 = 12"
func (r *Roll) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.spec, r.results, r.modifier, r.result)
}
