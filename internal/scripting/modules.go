package scripting

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dice/internal/game/dice"
)

// RegisterModules registers all engine.* Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine.dice and engine.log are defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "dice", m.newDiceModule(L))
	L.SetField(engine, "log", m.newLogModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) newDiceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"roll":  m.luaRoll,
		"range": luaRange,
		"die":   m.luaDie,
		"count": m.luaCount,
	})
	return mod
}

// luaRoll implements engine.dice.roll(spec[, modifier[, where]]).
func (m *Manager) luaRoll(L *lua.LState) int {
	spec := L.OptString(1, dice.DefaultSpec)
	modifier := L.OptInt(2, 0)
	where := L.OptString(3, "")

	if !m.reserveDice(L, spec) {
		return 0
	}
	roll := m.roller.Roll(spec, modifier)
	if where != "" {
		filtered, err := m.roller.Where(roll, where)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		roll = filtered
	}
	L.Push(rollTable(L, roll))
	return 1
}

// luaRange implements engine.dice.range(spec[, modifier]) -> lo, hi.
func luaRange(L *lua.LState) int {
	lo, hi := dice.Range(L.CheckString(1), L.OptInt(2, 0))
	L.Push(lua.LNumber(lo))
	L.Push(lua.LNumber(hi))
	return 2
}

// luaDie implements engine.dice.die(faces).
func (m *Manager) luaDie(L *lua.LState) int {
	faces := L.CheckInt(1)
	if faces < 1 {
		L.ArgError(1, "faces must be >= 1")
		return 0
	}
	L.Push(lua.LNumber(dice.RollDieFrom(m.roller.Source(), faces)))
	return 1
}

// luaCount implements engine.dice.count(spec, modifier[, selector]). With no
// selector it returns a face -> count table; a number selects one face; a
// string is a condition.
func (m *Manager) luaCount(L *lua.LState) int {
	spec := L.CheckString(1)
	modifier := L.OptInt(2, 0)
	if !m.reserveDice(L, spec) {
		return 0
	}
	roll := m.roller.Roll(spec, modifier)

	switch sel := L.Get(3).(type) {
	case *lua.LNilType:
		L.Push(countTable(L, roll.Count()))
	case lua.LNumber:
		f := float64(sel)
		if f != math.Trunc(f) {
			// No die shows a fractional face.
			L.Push(lua.LNumber(0))
			break
		}
		L.Push(lua.LNumber(roll.CountFace(int(f))))
	case lua.LString:
		n, err := roll.CountWhere(string(sel))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(n))
	default:
		L.TypeError(3, lua.LTString)
		return 0
	}
	return 1
}

// reserveDice refuses specs asking for more than dice.MaxQuantity dice and
// charges one instruction per die against the calling script's budget. On
// refusal it raises a Lua error and returns false.
func (m *Manager) reserveDice(L *lua.LState, spec string) bool {
	n, clamped := dice.Quantity(spec)
	if clamped {
		L.ArgError(1, fmt.Sprintf("at most %d dice per roll", dice.MaxQuantity))
		return false
	}
	if !chargeInstructions(L, n) {
		L.RaiseError("scripting: instruction limit exceeded rolling %q", spec)
		return false
	}
	return true
}

// rollTable converts r into
// {spec, faces, modifier, result, min, max, results = {...}, counts = {...}}.
func rollTable(L *lua.LState, r *dice.Roll) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("spec", lua.LString(r.Spec()))
	t.RawSetString("faces", lua.LNumber(r.Faces()))
	t.RawSetString("modifier", lua.LNumber(r.Modifier()))
	t.RawSetString("result", lua.LNumber(r.Result()))
	t.RawSetString("min", lua.LNumber(r.Min()))
	t.RawSetString("max", lua.LNumber(r.Max()))

	results := L.NewTable()
	for _, v := range r.Results() {
		results.Append(lua.LNumber(v))
	}
	t.RawSetString("results", results)
	t.RawSetString("counts", countTable(L, r.Count()))
	return t
}

func countTable(L *lua.LState, counts map[int]int) *lua.LTable {
	t := L.NewTable()
	for face, n := range counts {
		t.RawSetInt(face, lua.LNumber(n))
	}
	return t
}

func (m *Manager) newLogModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	logAt := func(fn func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"debug": logAt(m.logger.Debug),
		"info":  logAt(m.logger.Info),
		"warn":  logAt(m.logger.Warn),
		"error": logAt(m.logger.Error),
	})
	return mod
}
