// SPDX-License-Identifier: MPL-2.0

package luabind

import (
	"regexp"

	lua "github.com/yuin/gopher-lua"
)

// regexTypeName is the metatable key for compiled pattern handles.
const regexTypeName = "regex"

// registerRegexType installs the handle metatable. Handles are
// userdata values wrapping a *regexp.Regexp; the pattern is compiled
// eagerly in regexNew and immutable afterwards, so a handle shared by
// multiple script references is always safe. Lifetime is owned by the
// Lua garbage collector.
func registerRegexType(L *lua.LState) {
	mt := L.NewTypeMetatable(regexTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"is_match": regexIsMatch,
		"find":     regexFind,
	}))
}

// regexNew compiles a pattern (RE2 dialect) into a handle. Raises a
// Lua error when the pattern does not compile.
func regexNew(L *lua.LState) int {
	expr := L.CheckString(1)

	re, err := regexp.Compile(expr)
	if err != nil {
		L.RaiseError("regex: %v", err)
		return 0
	}

	ud := L.NewUserData()
	ud.Value = re
	L.SetMetatable(ud, L.GetTypeMetatable(regexTypeName))
	L.Push(ud)
	return 1
}

// checkRegex extracts the compiled pattern from the method receiver.
func checkRegex(L *lua.LState) *regexp.Regexp {
	ud := L.CheckUserData(1)
	if re, ok := ud.Value.(*regexp.Regexp); ok {
		return re
	}
	L.ArgError(1, "regex handle expected")
	return nil
}

// regexIsMatch reports whether any substring of the text matches.
func regexIsMatch(L *lua.LState) int {
	re := checkRegex(L)
	text := L.CheckString(2)

	L.Push(lua.LBool(re.MatchString(text)))
	return 1
}

// regexFind returns the groups of the first match as a table: the
// whole match at index 1, capture groups at 2..n. No match yields an
// empty table.
func regexFind(L *lua.LState) int {
	re := checkRegex(L)
	text := L.CheckString(2)

	tbl := L.NewTable()
	if groups := re.FindStringSubmatch(text); groups != nil {
		for i, group := range groups {
			tbl.RawSetInt(i+1, lua.LString(group))
		}
	}

	L.Push(tbl)
	return 1
}
