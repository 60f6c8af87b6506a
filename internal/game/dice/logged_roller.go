package dice

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Roller wraps a Source and logger to provide logged dice rolling.
// Every roll and filter is logged at debug level with a roll id, the
// specification, the outcomes, the modifier, and the result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: logger must be non-nil. A nil src uses the default source.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		panic("dice: NewLoggedRoller called with nil logger")
	}
	if src == nil {
		src = defaultSource
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the randomness source the Roller draws from.
func (r *Roller) Source() Source {
	return r.src
}

// Roll constructs a Roll for spec and modifier and logs it.
//
// Postcondition: the returned Roll satisfies every NewRoll postcondition.
func (r *Roller) Roll(spec string, modifier int) *Roll {
	roll := NewRoll(spec, modifier, r.src)
	r.logger.Debug("dice roll",
		zap.String("roll_id", uuid.New().String()),
		zap.String("spec", roll.spec),
		zap.Stringer("die", roll.faces),
		zap.Ints("results", roll.results),
		zap.Int("modifier", roll.modifier),
		zap.Int("result", roll.result),
	)
	return roll
}

// Where filters roll by cond and logs the kept outcomes.
//
// Postcondition: Returns the filtered Roll or an error wrapping ErrInvalidCondition.
func (r *Roller) Where(roll *Roll, cond string) (*Roll, error) {
	filtered, err := roll.Where(cond)
	if err != nil {
		r.logger.Debug("dice filter rejected",
			zap.String("spec", roll.spec),
			zap.String("condition", cond),
			zap.Error(err),
		)
		return nil, err
	}
	r.logger.Debug("dice filter",
		zap.String("spec", roll.spec),
		zap.String("condition", cond),
		zap.Ints("kept", filtered.results),
		zap.Int("result", filtered.result),
	)
	return filtered, nil
}

// Range returns the theoretical bounds of spec plus modifier. See Range.
func (r *Roller) Range(spec string, modifier int) (lo, hi int) {
	return Range(spec, modifier)
}
