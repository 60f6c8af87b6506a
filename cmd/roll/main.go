// Package main provides a command-line dice roller over the dice library,
// with optional YAML presets and Lua hooks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dice/internal/config"
	"github.com/cory-johannsen/dice/internal/game/dice"
	"github.com/cory-johannsen/dice/internal/game/preset"
	"github.com/cory-johannsen/dice/internal/observability"
	"github.com/cory-johannsen/dice/internal/scripting"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and DICE_* env")
	spec := flag.String("spec", "", "roll specification, e.g. 3d6; empty = dice.default_spec")
	modifier := flag.Int("mod", 0, "flat modifier added to the roll")
	where := flag.String("where", "", "keep only outcomes matching this condition, e.g. >=5")
	showRange := flag.Bool("range", false, "print the theoretical bounds instead of rolling")
	presetID := flag.String("preset", "", "roll the named preset instead of -spec")
	presetsDir := flag.String("presets-dir", "", "override presets.dir")
	scriptDir := flag.String("script-dir", "", "override scripting.dir")
	hook := flag.String("hook", "", "call this Lua function from the loaded scripts and print its result")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *presetsDir != "" {
		cfg.Presets.Dir = *presetsDir
	}
	if *scriptDir != "" {
		cfg.Scripting.Dir = *scriptDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	src, err := dice.NewSourceByName(cfg.Dice.Source, cfg.Dice.Seed)
	if err != nil {
		logger.Fatal("creating dice source", zap.Error(err))
	}
	roller := dice.NewLoggedRoller(src, observability.RollLogger(logger, cfg.Logging))

	switch {
	case *hook != "":
		out, err := runHook(cfg.Scripting, roller, logger, *hook, flag.Args())
		if err != nil {
			logger.Fatal("running hook", zap.String("hook", *hook), zap.Error(err))
		}
		fmt.Fprintln(os.Stdout, out)

	case *presetID != "":
		p, err := lookupPreset(cfg.Presets.Dir, *presetID)
		if err != nil {
			logger.Fatal("loading preset", zap.String("preset", *presetID), zap.Error(err))
		}
		if *showRange {
			lo, hi := p.Range()
			fmt.Fprintf(os.Stdout, "%s: %d..%d\n", p.ID, lo, hi)
			return
		}
		r, err := p.Roll(roller)
		if err != nil {
			logger.Fatal("rolling preset", zap.String("preset", p.ID), zap.Error(err))
		}
		fmt.Fprintf(os.Stdout, "%s: %s\n", p.ID, r)

	default:
		s := *spec
		if s == "" {
			s = cfg.Dice.DefaultSpec
		}
		if *showRange {
			lo, hi := roller.Range(s, *modifier)
			fmt.Fprintf(os.Stdout, "%d..%d\n", lo, hi)
			return
		}
		r := roller.Roll(s, *modifier)
		if *where != "" {
			r, err = roller.Where(r, *where)
			if err != nil {
				logger.Fatal("filtering roll", zap.String("where", *where), zap.Error(err))
			}
		}
		fmt.Fprintln(os.Stdout, r)
	}
}

// lookupPreset loads every preset in dir and returns the one named id.
func lookupPreset(dir, id string) (*preset.Preset, error) {
	if dir == "" {
		return nil, fmt.Errorf("presets.dir is not configured")
	}
	presets, err := preset.LoadPresets(dir)
	if err != nil {
		return nil, err
	}
	reg, err := preset.NewRegistry(presets)
	if err != nil {
		return nil, err
	}
	p, ok := reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q; known: %s", id, strings.Join(reg.IDs(), ", "))
	}
	return p, nil
}

// runHook loads the configured scripts into the global VM and calls hook with
// args passed as Lua numbers when numeric and strings otherwise.
func runHook(cfg config.ScriptingConfig, roller *dice.Roller, logger *zap.Logger, hook string, args []string) (string, error) {
	if cfg.Dir == "" {
		return "", fmt.Errorf("scripting.dir is not configured")
	}
	mgr := scripting.NewManager(roller, logger)
	defer mgr.Close()

	if err := mgr.LoadGlobal(cfg.Dir, cfg.InstructionLimit); err != nil {
		return "", err
	}

	luaArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		if n, err := strconv.ParseFloat(a, 64); err == nil {
			luaArgs[i] = lua.LNumber(n)
			continue
		}
		luaArgs[i] = lua.LString(a)
	}
	ret, err := mgr.CallHook("", hook, luaArgs...)
	if err != nil {
		return "", err
	}
	return ret.String(), nil
}
