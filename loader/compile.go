// Package loader loads Lua preset packs into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"

	"github.com/nathoo/twistrand/engine/curve"
	lua "github.com/yuin/gopher-lua"
)

// rawPreset holds one preset table before compilation.
type rawPreset struct {
	id    string
	table *lua.LTable
}

// PackInfo describes a preset pack.
type PackInfo struct {
	Name        string
	Author      string
	Version     string
	Description string
}

// TableDef is a weighted selection table: parallel weights and labels.
type TableDef struct {
	ID      string
	Weights []float64
	Labels  []string
}

// DiceDef is a named set of dice, one entry per die's side count.
type DiceDef struct {
	ID    string
	Sides []int32
}

// CharsetDef is a named custom character set.
type CharsetDef struct {
	ID    string
	Chars string
}

// Library is the compiled, immutable preset library.
type Library struct {
	Pack     PackInfo
	Tables   map[string]TableDef
	Dice     map[string]DiceDef
	Curves   map[string]*curve.Curve
	Charsets map[string]CharsetDef
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// compile converts all collected Lua data into a Library.
func compile(coll *collector) (*Library, error) {
	lib := &Library{
		Tables:   map[string]TableDef{},
		Dice:     map[string]DiceDef{},
		Curves:   map[string]*curve.Curve{},
		Charsets: map[string]CharsetDef{},
	}

	if coll.pack != nil {
		lib.Pack = PackInfo{
			Name:        getString(coll.pack, "name"),
			Author:      getString(coll.pack, "author"),
			Version:     getString(coll.pack, "version"),
			Description: getString(coll.pack, "description"),
		}
	}

	for _, raw := range coll.tables {
		def, err := compileTable(raw)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", raw.id, err)
		}
		lib.Tables[def.ID] = def
	}

	for _, raw := range coll.dice {
		def, err := compileDice(raw)
		if err != nil {
			return nil, fmt.Errorf("dice %s: %w", raw.id, err)
		}
		lib.Dice[def.ID] = def
	}

	for _, raw := range coll.curves {
		c, err := compileCurve(raw)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", raw.id, err)
		}
		lib.Curves[raw.id] = c
	}

	for _, raw := range coll.charsets {
		lib.Charsets[raw.id] = CharsetDef{
			ID:    raw.id,
			Chars: getString(raw.table, "chars"),
		}
	}

	return lib, nil
}

// compileTable reads a weighted table from its entries list. Each entry is
// an Entry(weight, label) table.
func compileTable(raw rawPreset) (TableDef, error) {
	def := TableDef{ID: raw.id}

	entries := getTable(raw.table, "entries")
	if entries == nil {
		return def, fmt.Errorf("missing entries list")
	}
	entries.ForEach(func(k, v lua.LValue) {
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		if entry, ok := v.(*lua.LTable); ok {
			def.Weights = append(def.Weights, getNumber(entry, "weight"))
			def.Labels = append(def.Labels, getString(entry, "label"))
		}
	})
	if len(def.Weights) == 0 {
		return def, fmt.Errorf("entries list is empty")
	}
	return def, nil
}

// compileDice accepts either an explicit sides list ({6, 6, 8}) or the
// count/sides shorthand (count = 3, sides = 6).
func compileDice(raw rawPreset) (DiceDef, error) {
	def := DiceDef{ID: raw.id}

	if sidesTbl := getTable(raw.table, "sides_list"); sidesTbl != nil {
		sidesTbl.ForEach(func(k, v lua.LValue) {
			if _, ok := k.(lua.LNumber); !ok {
				return
			}
			if n, ok := v.(lua.LNumber); ok {
				def.Sides = append(def.Sides, int32(n))
			}
		})
		if len(def.Sides) == 0 {
			return def, fmt.Errorf("sides_list is empty")
		}
		return def, nil
	}

	count := int(getNumber(raw.table, "count"))
	sides := int32(getNumber(raw.table, "sides"))
	if count < 1 || sides < 1 {
		return def, fmt.Errorf("need sides_list or positive count and sides")
	}
	for i := 0; i < count; i++ {
		def.Sides = append(def.Sides, sides)
	}
	return def, nil
}

func compileCurve(raw rawPreset) (*curve.Curve, error) {
	keysTbl := getTable(raw.table, "keys")
	if keysTbl == nil {
		return nil, fmt.Errorf("missing keys list")
	}

	var keys []curve.Key
	var badInterp string
	keysTbl.ForEach(func(k, v lua.LValue) {
		if _, ok := k.(lua.LNumber); !ok {
			return
		}
		keyTbl, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		name := getString(keyTbl, "interp")
		interp, ok := interpFromName(name)
		if !ok {
			badInterp = name
			return
		}
		keys = append(keys, curve.Key{
			Time:   getNumber(keyTbl, "time"),
			Value:  getNumber(keyTbl, "value"),
			Interp: interp,
		})
	})
	if badInterp != "" {
		return nil, fmt.Errorf("unknown interpolation %q", badInterp)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("keys list is empty")
	}
	return curve.New(keys...), nil
}

func interpFromName(name string) (curve.Interp, bool) {
	switch name {
	case "", "linear":
		return curve.Linear, true
	case "ease_out":
		return curve.EaseOutQuad, true
	case "ease_in_out":
		return curve.EaseInOutCubic, true
	default:
		return curve.Linear, false
	}
}
