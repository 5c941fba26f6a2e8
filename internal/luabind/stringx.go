// SPDX-License-Identifier: MPL-2.0

package luabind

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// newStringxModule builds the stringx global: pure string helpers.
func (b *Binder) newStringxModule(L *lua.LState) *lua.LTable {
	return newModule(L, map[string]func(*lua.LState, *lua.LTable) int{
		"split": stringxSplit,
		"trim":  stringxTrim,
	})
}

// stringxSplit splits on every occurrence of a literal delimiter.
// Consecutive delimiters yield empty-string elements; an empty input
// yields a single empty-string element.
func stringxSplit(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)
	s := L.CheckString(base + 1)
	sep := L.CheckString(base + 2)

	parts := strings.Split(s, sep)
	tbl := L.CreateTable(len(parts), 0)
	for i, part := range parts {
		tbl.RawSetInt(i+1, lua.LString(part))
	}

	L.Push(tbl)
	return 1
}

// stringxTrim removes leading and trailing whitespace, leaving
// interior whitespace untouched.
func stringxTrim(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)
	s := L.CheckString(base + 1)

	L.Push(lua.LString(strings.TrimSpace(s)))
	return 1
}
