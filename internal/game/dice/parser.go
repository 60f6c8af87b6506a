package dice

import (
	"errors"
	"strconv"
	"strings"
)

// MaxQuantity is the largest number of dice a single roll draws. Larger
// quantities are clamped to it.
const MaxQuantity = 1000

// MaxRangeFaces bounds the magnitude of the face token Range accepts, so
// faces*quantity always fits in an int.
const MaxRangeFaces = 1_000_000

// splitSpec returns the raw quantity and face tokens of a "<quantity>d<faces>"
// string. Tokens past a second 'd' are ignored.
func splitSpec(spec string) (quantity, faces string) {
	parts := strings.Split(spec, "d")
	quantity = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		faces = strings.TrimSpace(parts[1])
	}
	return quantity, faces
}

// atoiSaturating parses raw as an integer. A literal too large for an int
// saturates at math.MaxInt or math.MinInt instead of failing.
func atoiSaturating(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

// parseQuantity returns the number of dice to roll; anything that is not a
// positive integer means a single die. The second result reports whether
// the requested quantity exceeded MaxQuantity and was clamped.
func parseQuantity(raw string) (int, bool) {
	n, ok := atoiSaturating(raw)
	if !ok || n < 1 {
		return 1, false
	}
	if n > MaxQuantity {
		return MaxQuantity, true
	}
	return n, false
}

// Quantity reports how many dice NewRoll draws for spec, and whether the
// quantity written in spec was above MaxQuantity.
func Quantity(spec string) (n int, clamped bool) {
	if spec == "" {
		spec = DefaultSpec
	}
	q, _ := splitSpec(spec)
	return parseQuantity(q)
}

// parseFace returns the die named by raw, or DefaultFace when raw is not a
// supported face count.
func parseFace(raw string) Face {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultFace
	}
	f := Face(n)
	if !f.Valid() {
		return DefaultFace
	}
	return f
}

// Range returns the theoretical lowest and highest totals of spec plus
// modifier without rolling anything.
//
// Unlike NewRoll, Range does not check the face count against the supported
// dice: "1d7" spans [1, 7]. Integer tokens are used literally, including zero
// and negative values. A token that is not an integer falls back to the
// default (one die, twenty faces). The quantity is clamped to
// [-MaxQuantity, MaxQuantity] and the faces to [-MaxRangeFaces, MaxRangeFaces].
//
// Postcondition: lo == quantity + modifier; hi == faces*quantity + modifier.
func Range(spec string, modifier int) (lo, hi int) {
	q, f := splitSpec(spec)
	quantity, ok := atoiSaturating(q)
	if !ok {
		quantity = 1
	}
	faces, ok := atoiSaturating(f)
	if !ok {
		faces = int(DefaultFace)
	}
	quantity = clamp(quantity, -MaxQuantity, MaxQuantity)
	faces = clamp(faces, -MaxRangeFaces, MaxRangeFaces)
	return quantity + modifier, faces*quantity + modifier
}
