// Package session evaluates sampling commands against a set of named
// engines. The session is the single mutable object shared by the CLI and
// the TUI; everything below it is deterministic engine state.
package session

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/twistrand/engine"
	"github.com/nathoo/twistrand/engine/curve"
	"github.com/nathoo/twistrand/engine/luck"
	"github.com/nathoo/twistrand/engine/save"
	"github.com/nathoo/twistrand/loader"
	"github.com/nathoo/twistrand/randstr"
	"github.com/nathoo/twistrand/randutil"
	"github.com/nathoo/twistrand/types"
)

// Session holds named engines and an optional preset library.
type Session struct {
	engines map[string]*engine.Engine
	active  string
	lib     *loader.Library
}

// DefaultEngine is the name of the engine a fresh session starts with.
const DefaultEngine = "main"

// New creates a session with one engine seeded with the given value.
func New(seed int32) *Session {
	return &Session{
		engines: map[string]*engine.Engine{DefaultEngine: engine.New(seed)},
		active:  DefaultEngine,
	}
}

// NewRandom creates a session with one randomly seeded engine.
func NewRandom() *Session {
	return New(engine.NewSeed())
}

// Active returns the currently selected engine.
func (s *Session) Active() *engine.Engine {
	return s.engines[s.active]
}

// ActiveName returns the name of the currently selected engine.
func (s *Session) ActiveName() string {
	return s.active
}

// Use selects an engine by name. Returns false if no such engine exists.
func (s *Session) Use(name string) bool {
	if _, ok := s.engines[name]; !ok {
		return false
	}
	s.active = name
	return true
}

// Add creates (or replaces) a named engine and selects it.
func (s *Session) Add(name string, seed int32) {
	s.engines[name] = engine.New(seed)
	s.active = name
}

// Names returns the engine names in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.engines))
	for n := range s.engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetLibrary attaches a preset library to the session.
func (s *Session) SetLibrary(lib *loader.Library) {
	s.lib = lib
}

// Library returns the attached preset library, or nil.
func (s *Session) Library() *loader.Library {
	return s.lib
}

// Snapshot captures every engine's (seed, count) pair for persistence.
func (s *Session) Snapshot() *save.SessionData {
	sd := &save.SessionData{
		Version: "1",
		Active:  s.active,
		Engines: map[string]save.EngineState{},
	}
	for name, e := range s.engines {
		sd.Engines[name] = save.Capture(e)
	}
	return sd
}

// ApplySnapshot replaces the session's engines with the snapshot's,
// rebuilding each by reseed-and-replay. The preset library is untouched.
func (s *Session) ApplySnapshot(sd *save.SessionData) {
	s.engines = map[string]*engine.Engine{}
	for name, st := range sd.Engines {
		s.engines[name] = save.Restore(st)
	}
	if _, ok := s.engines[sd.Active]; ok {
		s.active = sd.Active
	} else {
		// Damaged snapshot: fall back to a fresh default engine.
		if len(s.engines) == 0 {
			s.engines[DefaultEngine] = engine.NewRandom()
		}
		s.active = s.Names()[0]
	}
}

// Eval parses and runs one sampling command against the active engine.
// Unknown commands and bad arguments produce an error result; the engine
// is never advanced by a command that fails to parse.
func (s *Session) Eval(input string) types.Result {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return s.errResult("empty command")
	}

	e := s.Active()
	before := e.State()

	out, err := s.eval(e, fields[0], fields[1:])
	if err != nil {
		return s.errResult(err.Error())
	}

	after := e.State()
	return types.Result{
		Output: out,
		Units:  after - before,
		Count:  after,
	}
}

func (s *Session) errResult(msg string) types.Result {
	return types.Result{
		Output: []string{msg},
		Count:  s.Active().State(),
		IsErr:  true,
	}
}

func (s *Session) eval(e *engine.Engine, cmd string, args []string) ([]string, error) {
	switch cmd {
	case "int":
		min, max, err := rangeInt(args, 0, 99)
		if err != nil {
			return nil, err
		}
		return line("%d", e.RandInt(min, max)), nil

	case "float":
		min, max, err := rangeFloat(args, 0, 1)
		if err != nil {
			return nil, err
		}
		return line("%g", e.RandFloat(min, max)), nil

	case "bool":
		p := 0.5
		if len(args) > 0 {
			var err error
			if p, err = parseFloat(args[0]); err != nil {
				return nil, err
			}
		}
		return line("%v", e.RandBool(p)), nil

	case "biased":
		if len(args) != 4 {
			return nil, fmt.Errorf("usage: biased <min> <max> <toward> <force>")
		}
		min, err1 := parseFloat(args[0])
		max, err2 := parseFloat(args[1])
		toward, err3 := parseFloat(args[2])
		force, err4 := parseInt32(args[3])
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, err
		}
		return line("%g", e.RandFloatBiased(min, max, toward, force)), nil

	case "bbool":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: bbool <p> <true|false> <force>")
		}
		p, err1 := parseFloat(args[0])
		toward, err2 := parseBool(args[1])
		force, err3 := parseInt32(args[2])
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, err
		}
		return line("%v", e.RandBoolBiased(p, toward, force)), nil

	case "gauss":
		mean, stddev, err := rangeFloat(args, 0, 1)
		if err != nil {
			return nil, err
		}
		return line("%g", e.RandGaussian(mean, stddev)), nil

	case "clamped":
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("usage: clamped <min> <max> <bias> <spread> [attempts]")
		}
		min, err1 := parseFloat(args[0])
		max, err2 := parseFloat(args[1])
		bias, err3 := parseFloat(args[2])
		spread, err4 := parseFloat(args[3])
		attempts := int32(5)
		var err5 error
		if len(args) == 5 {
			attempts, err5 = parseInt32(args[4])
		}
		if err := firstErr(err1, err2, err3, err4, err5); err != nil {
			return nil, err
		}
		return line("%g", e.RandGaussianClamped(min, max, bias, spread, attempts)), nil

	case "trunc":
		if len(args) != 4 {
			return nil, fmt.Errorf("usage: trunc <min> <max> <bias> <spread>")
		}
		min, err1 := parseFloat(args[0])
		max, err2 := parseFloat(args[1])
		bias, err3 := parseFloat(args[2])
		spread, err4 := parseFloat(args[3])
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, err
		}
		return line("%g", e.RandGaussianTruncated(min, max, bias, spread)), nil

	case "weighted":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: weighted <w1> <w2> ...")
		}
		weights := make([]float64, len(args))
		for i, a := range args {
			w, err := parseFloat(a)
			if err != nil {
				return nil, err
			}
			weights[i] = w
		}
		return line("%d", e.RandWeighted(weights)), nil

	case "roll":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: roll <N>d<S>")
		}
		numDice, sides, err := parseDiceSpec(args[0])
		if err != nil {
			return nil, err
		}
		return line("%d", e.RollDice(numDice, sides)), nil

	case "dice":
		def, err := s.dicePreset(args)
		if err != nil {
			return nil, err
		}
		return line("%d", e.RollDiceArray(def.Sides)), nil

	case "table":
		def, err := s.tablePreset(args)
		if err != nil {
			return nil, err
		}
		i := e.RandWeighted(def.Weights)
		if i < 0 {
			return line("(no entry)"), nil
		}
		return line("%s", def.Labels[i]), nil

	case "curve":
		c, rest, err := s.curvePreset(args)
		if err != nil {
			return nil, err
		}
		if len(rest) == 2 {
			min, err1 := parseFloat(rest[0])
			max, err2 := parseFloat(rest[1])
			if err := firstErr(err1, err2); err != nil {
				return nil, err
			}
			return line("%g", e.RandCurveRange(c, min, max)), nil
		}
		return line("%g", e.RandCurveValue(c)), nil

	case "str":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: str <length> [kind]")
		}
		length, err := parseInt32(args[0])
		if err != nil {
			return nil, err
		}
		kind := randstr.AlphaNumeric
		if len(args) > 1 {
			kind = randstr.KindFromName(args[1])
		}
		return line("%s", randstr.New(e).String(int(length), kind, "")), nil

	case "charset":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: charset <preset> <length>")
		}
		if s.lib == nil {
			return nil, fmt.Errorf("no preset library loaded")
		}
		def, ok := s.lib.Charsets[args[0]]
		if !ok {
			return nil, fmt.Errorf("unknown charset preset %q", args[0])
		}
		length, err := parseInt32(args[1])
		if err != nil {
			return nil, err
		}
		return line("%s", randstr.New(e).String(int(length), randstr.Custom, def.Chars)), nil

	case "password":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: password <length>")
		}
		length, err := parseInt32(args[0])
		if err != nil {
			return nil, err
		}
		return line("%s", randstr.New(e).Password(int(length), true, true, true, true)), nil

	case "ident":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: ident <length>")
		}
		length, err := parseInt32(args[0])
		if err != nil {
			return nil, err
		}
		return line("%s", randstr.New(e).Identifier(int(length), false)), nil

	case "name":
		min, max, err := rangeInt(args, 4, 8)
		if err != nil {
			return nil, err
		}
		return line("%s", randstr.New(e).Name(int(min), int(max))), nil

	case "hex":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: hex <length>")
		}
		length, err := parseInt32(args[0])
		if err != nil {
			return nil, err
		}
		return line("%s", randstr.New(e).HexString(int(length), true)), nil

	case "pattern":
		if len(args) != 1 {
			return nil, fmt.Errorf("usage: pattern <pattern>")
		}
		return line("%s", randstr.New(e).FromPattern(args[0], "")), nil

	case "guid":
		// Static path: a fresh entropy-seeded engine, not the session's.
		return line("%s", engine.NewGUID()), nil

	case "color":
		if len(args) > 0 && args[0] == "alpha" {
			return line("%s", randutil.ColorAlpha(e).Hex()), nil
		}
		return line("%s", randutil.Color(e).Hex()), nil

	case "vec":
		min, max, err := rangeFloat(args, -1, 1)
		if err != nil {
			return nil, err
		}
		v := randutil.Vector(e, min, max)
		return line("(%g, %g, %g)", v.X, v.Y, v.Z), nil

	case "unitvec":
		v := randutil.UnitVector(e)
		return line("(%g, %g, %g)", v.X, v.Y, v.Z), nil

	case "vec2":
		min, max, err := rangeFloat(args, -1, 1)
		if err != nil {
			return nil, err
		}
		v := randutil.Vector2(e, min, max)
		return line("(%g, %g)", v.X, v.Y), nil

	case "circle":
		radius := 1.0
		if len(args) > 0 {
			var err error
			if radius, err = parseFloat(args[0]); err != nil {
				return nil, err
			}
		}
		v := randutil.InCircle(e, radius)
		return line("(%g, %g)", v.X, v.Y), nil

	case "sphere":
		radius := 1.0
		if len(args) > 0 {
			var err error
			if radius, err = parseFloat(args[0]); err != nil {
				return nil, err
			}
		}
		v := randutil.InSphere(e, radius)
		return line("(%g, %g, %g)", v.X, v.Y, v.Z), nil

	case "quat":
		q := randutil.Quaternion(e)
		return line("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W), nil

	case "rotator":
		r := randutil.Rotator(e)
		return line("pitch=%g yaw=%g roll=%g", r.Pitch, r.Yaw, r.Roll), nil

	case "pick":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: pick <item> <item> ...")
		}
		item, _ := randutil.Pick(e, args)
		return line("%s", item), nil

	case "shuffle":
		if len(args) == 0 {
			return nil, fmt.Errorf("usage: shuffle <item> <item> ...")
		}
		items := append([]string(nil), args...)
		randutil.Shuffle(e, items)
		return line("%s", strings.Join(items, " ")), nil

	case "luck":
		return s.evalLuck(args)

	default:
		return nil, fmt.Errorf("unknown command: %s (try help)", cmd)
	}
}

// evalLuck scores a value against the distribution that could have produced
// it. Luck commands are pure: they never advance the engine.
func (s *Session) evalLuck(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: luck float|bool|curve ...")
	}
	switch args[0] {
	case "float":
		if len(args) != 4 {
			return nil, fmt.Errorf("usage: luck float <value> <min> <max>")
		}
		v, err1 := parseFloat(args[1])
		min, err2 := parseFloat(args[2])
		max, err3 := parseFloat(args[3])
		if err := firstErr(err1, err2, err3); err != nil {
			return nil, err
		}
		return line("%g", luck.EvalFloatMax(v, min, max)), nil

	case "bool":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: luck bool <true|false> <p>")
		}
		v, err1 := parseBool(args[1])
		p, err2 := parseFloat(args[2])
		if err := firstErr(err1, err2); err != nil {
			return nil, err
		}
		return line("%g", luck.EvalBoolTrue(v, p)), nil

	case "curve":
		if len(args) < 3 || len(args) > 4 {
			return nil, fmt.Errorf("usage: luck curve <preset> <value> [rarity_time]")
		}
		if s.lib == nil {
			return nil, fmt.Errorf("no preset library loaded")
		}
		c, ok := s.lib.Curves[args[1]]
		if !ok {
			return nil, fmt.Errorf("unknown curve preset %q", args[1])
		}
		v, err := parseFloat(args[2])
		if err != nil {
			return nil, err
		}
		rarityTime := 1.0
		if len(args) == 4 {
			if rarityTime, err = parseFloat(args[3]); err != nil {
				return nil, err
			}
		}
		return line("%g", luck.EvalCurve(v, c, rarityTime)), nil

	default:
		return nil, fmt.Errorf("unknown luck mode: %s", args[0])
	}
}

func (s *Session) dicePreset(args []string) (loader.DiceDef, error) {
	if len(args) != 1 {
		return loader.DiceDef{}, fmt.Errorf("usage: dice <preset>")
	}
	if s.lib == nil {
		return loader.DiceDef{}, fmt.Errorf("no preset library loaded")
	}
	def, ok := s.lib.Dice[args[0]]
	if !ok {
		return loader.DiceDef{}, fmt.Errorf("unknown dice preset %q", args[0])
	}
	return def, nil
}

func (s *Session) tablePreset(args []string) (loader.TableDef, error) {
	if len(args) != 1 {
		return loader.TableDef{}, fmt.Errorf("usage: table <preset>")
	}
	if s.lib == nil {
		return loader.TableDef{}, fmt.Errorf("no preset library loaded")
	}
	def, ok := s.lib.Tables[args[0]]
	if !ok {
		return loader.TableDef{}, fmt.Errorf("unknown table preset %q", args[0])
	}
	return def, nil
}

func (s *Session) curvePreset(args []string) (*curve.Curve, []string, error) {
	if len(args) < 1 {
		return nil, nil, fmt.Errorf("usage: curve <preset> [min max]")
	}
	if s.lib == nil {
		return nil, nil, fmt.Errorf("no preset library loaded")
	}
	c, ok := s.lib.Curves[args[0]]
	if !ok {
		return nil, nil, fmt.Errorf("unknown curve preset %q", args[0])
	}
	return c, args[1:], nil
}

func line(format string, a ...any) []string {
	return []string{fmt.Sprintf(format, a...)}
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad integer %q", s)
	}
	return int32(v), nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "yes", "1":
		return true, nil
	case "false", "f", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("bad boolean %q", s)
}

// parseDiceSpec parses the compact "NdS" form, e.g. "3d6".
func parseDiceSpec(s string) (numDice, sides int32, err error) {
	i := strings.IndexAny(s, "dD")
	if i <= 0 || i == len(s)-1 {
		return 0, 0, fmt.Errorf("bad dice spec %q (want NdS, e.g. 3d6)", s)
	}
	numDice, err = parseInt32(s[:i])
	if err != nil {
		return 0, 0, err
	}
	sides, err = parseInt32(s[i+1:])
	if err != nil {
		return 0, 0, err
	}
	if numDice < 1 || sides < 1 {
		return 0, 0, fmt.Errorf("bad dice spec %q (counts must be positive)", s)
	}
	return numDice, sides, nil
}

// rangeInt reads an optional [min max] argument pair.
func rangeInt(args []string, defMin, defMax int32) (int32, int32, error) {
	switch len(args) {
	case 0:
		return defMin, defMax, nil
	case 2:
		min, err1 := parseInt32(args[0])
		max, err2 := parseInt32(args[1])
		if err := firstErr(err1, err2); err != nil {
			return 0, 0, err
		}
		return min, max, nil
	default:
		return 0, 0, fmt.Errorf("expected no arguments or <min> <max>")
	}
}

// rangeFloat reads an optional [min max] argument pair.
func rangeFloat(args []string, defMin, defMax float64) (float64, float64, error) {
	switch len(args) {
	case 0:
		return defMin, defMax, nil
	case 2:
		min, err1 := parseFloat(args[0])
		max, err2 := parseFloat(args[1])
		if err := firstErr(err1, err2); err != nil {
			return 0, 0, err
		}
		return min, max, nil
	default:
		return 0, 0, fmt.Errorf("expected no arguments or <min> <max>")
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
