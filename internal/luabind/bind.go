// SPDX-License-Identifier: MPL-2.0

package luabind

import (
	"net/http"
	"time"

	lua "github.com/yuin/gopher-lua"

	"lunash-cli/internal/config"
)

// Binder owns the host-side state shared by the scripting modules and
// registers them into Lua states. One Binder serves one script run; the
// HTTP client it carries is reused across every http call of that run.
type Binder struct {
	httpClient *http.Client
}

// New creates a Binder configured from cfg. A nil cfg uses defaults.
func New(cfg *config.Config) *Binder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Binder{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		},
	}
}

// RegisterAll installs the fs, stringx, http and regex globals into L.
func (b *Binder) RegisterAll(L *lua.LState) {
	L.SetGlobal("fs", b.newFsModule(L))
	L.SetGlobal("stringx", b.newStringxModule(L))
	L.SetGlobal("http", b.newHTTPModule(L))

	registerRegexType(L)
	L.SetGlobal("regex", L.NewFunction(regexNew))
}

// argBase returns the index before the first real argument. Scripts may
// invoke module functions with method-call syntax (mod:fn(x)), which
// pushes the module table itself as argument 1; both call styles must
// see the same argument positions.
func argBase(L *lua.LState, mod *lua.LTable) int {
	if L.GetTop() >= 1 && L.Get(1) == lua.LValue(mod) {
		return 1
	}
	return 0
}

// newModule builds a module table with the given named functions. Each
// function closure receives the module table so it can normalize the
// call convention via argBase.
func newModule(L *lua.LState, fns map[string]func(*lua.LState, *lua.LTable) int) *lua.LTable {
	mod := L.NewTable()
	for name, fn := range fns {
		fn := fn
		mod.RawSetString(name, L.NewFunction(func(L *lua.LState) int {
			return fn(L, mod)
		}))
	}
	return mod
}
