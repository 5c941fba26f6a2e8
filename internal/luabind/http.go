// SPDX-License-Identifier: MPL-2.0

package luabind

import (
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// newHTTPModule builds the http global. Both operations block until
// the response arrives or the client timeout fires, return the body as
// a string regardless of status code, and raise a Lua error on any
// transport failure so scripts can pcall around them.
func (b *Binder) newHTTPModule(L *lua.LState) *lua.LTable {
	return newModule(L, map[string]func(*lua.LState, *lua.LTable) int{
		"get":  b.httpGet,
		"post": b.httpPost,
	})
}

func (b *Binder) httpGet(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)
	url := L.CheckString(base + 1)

	resp, err := b.httpClient.Get(url)
	if err != nil {
		L.RaiseError("http.get: %v", err)
		return 0
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		L.RaiseError("http.get: reading response: %v", err)
		return 0
	}

	L.Push(lua.LString(body))
	return 1
}

func (b *Binder) httpPost(L *lua.LState, mod *lua.LTable) int {
	base := argBase(L, mod)
	url := L.CheckString(base + 1)
	payload := L.CheckString(base + 2)

	resp, err := b.httpClient.Post(url, "text/plain; charset=utf-8", strings.NewReader(payload))
	if err != nil {
		L.RaiseError("http.post: %v", err)
		return 0
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		L.RaiseError("http.post: reading response: %v", err)
		return 0
	}

	L.Push(lua.LString(body))
	return 1
}
