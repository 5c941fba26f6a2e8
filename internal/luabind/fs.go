// SPDX-License-Identifier: MPL-2.0

package luabind

import (
	"os"

	lua "github.com/yuin/gopher-lua"

	"lunash-cli/pkg/fspath"
)

// newFsModule builds the fs global: path utilities over the host
// filesystem. Only readlink touches the filesystem; dirname and
// basename are pure path operations, except the zero-argument dirname
// form which reads the current working directory.
func (b *Binder) newFsModule(L *lua.LState) *lua.LTable {
	return newModule(L, map[string]func(*lua.LState, *lua.LTable) int{
		"dirname":  fsDirname,
		"basename": fsBasename,
		"readlink": fsReadlink,
	})
}

// fsDirname returns the parent directory of its argument, or of the
// current working directory when called without one. Raises when the
// path has no parent.
func fsDirname(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)

	path := ""
	if L.GetTop() > base {
		path = L.CheckString(base + 1)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			L.RaiseError("fs.dirname: %v", err)
			return 0
		}
		path = cwd
	}

	parent, err := fspath.Parent(path)
	if err != nil {
		L.RaiseError("fs.dirname: %v", err)
		return 0
	}

	L.Push(lua.LString(parent))
	return 1
}

// fsBasename returns the final component of the path.
func fsBasename(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)
	path := L.CheckString(base + 1)

	L.Push(lua.LString(fspath.Basename(path)))
	return 1
}

// fsReadlink resolves a symlink one level. Raises an IO error when the
// path is not a symlink or cannot be read.
func fsReadlink(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)
	path := L.CheckString(base + 1)

	target, err := fspath.Readlink(path)
	if err != nil {
		L.RaiseError("fs.readlink: %v", err)
		return 0
	}

	L.Push(lua.LString(target))
	return 1
}
