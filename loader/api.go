package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Pack { name = "...", ... }
	L.SetGlobal("Pack", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.pack = tbl
		return 0
	}))

	// Table "id" { ... } — curried: Table("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Table", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.tables = append(coll.tables, rawPreset{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Dice "id" { ... } — curried.
	L.SetGlobal("Dice", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.dice = append(coll.dice, rawPreset{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Curve "id" { ... } — curried.
	L.SetGlobal("Curve", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.curves = append(coll.curves, rawPreset{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Charset "id" { ... } — curried.
	L.SetGlobal("Charset", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.charsets = append(coll.charsets, rawPreset{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Entry(weight, "label") — one weighted-table row, returns the table.
	L.SetGlobal("Entry", L.NewFunction(func(L *lua.LState) int {
		weight := L.CheckNumber(1)
		label := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("weight", weight)
		tbl.RawSetString("label", lua.LString(label))
		L.Push(tbl)
		return 1
	}))

	// Key(time, value, interp?) — one curve keyframe, returns the table.
	L.SetGlobal("Key", L.NewFunction(func(L *lua.LState) int {
		t := L.CheckNumber(1)
		v := L.CheckNumber(2)
		interp := L.OptString(3, "linear")
		tbl := L.NewTable()
		tbl.RawSetString("time", t)
		tbl.RawSetString("value", v)
		tbl.RawSetString("interp", lua.LString(interp))
		L.Push(tbl)
		return 1
	}))
}
