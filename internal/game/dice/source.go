package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
	"sync"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are cryptographically secure and uniformly
// distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
// Panics with "dice: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// seededSource is a deterministic Source for tests and replays.
type seededSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeededSource returns a Source that yields the same sequence for the same
// seed. Calls are serialized with a mutex.
func NewSeededSource(seed int64) Source {
	return &seededSource{rng: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// NewSourceByName returns the Source named by kind: "crypto" or "seeded".
//
// Postcondition: Returns a Source or an error naming the unknown kind.
func NewSourceByName(kind string, seed int64) (Source, error) {
	switch kind {
	case "crypto":
		return NewCryptoSource(), nil
	case "seeded":
		return NewSeededSource(seed), nil
	default:
		return nil, fmt.Errorf("dice: unknown source %q", kind)
	}
}

var defaultSource = NewCryptoSource()

// DefaultSource returns the process-wide source used when no Source is given.
func DefaultSource() Source {
	return defaultSource
}

// RollDie returns one uniform outcome in [1, faces] from the default source.
//
// Precondition: faces >= 1.
func RollDie(faces int) int {
	return RollDieFrom(defaultSource, faces)
}

// RollDieFrom returns one uniform outcome in [1, faces] drawn from src. A nil
// src uses the default source.
//
// Precondition: faces >= 1.
func RollDieFrom(src Source, faces int) int {
	if faces < 1 {
		panic("dice: RollDie called with faces < 1")
	}
	if src == nil {
		src = defaultSource
	}
	return src.Intn(faces) + 1
}
