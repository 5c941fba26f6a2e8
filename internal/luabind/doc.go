// SPDX-License-Identifier: MPL-2.0

// Package luabind exposes the host capability modules (fs, http,
// stringx, regex) as globals of an embedded gopher-lua state.
//
// Functions are organized into domain-specific files:
//   - bind.go: Binder struct, registration, call-convention helpers
//   - fs.go: path utilities (dirname, basename, readlink)
//   - http.go: synchronous GET/POST
//   - stringx.go: split and trim helpers
//   - regex.go: compiled pattern handles
//
// Host-side failures (network errors, bad patterns, IO errors) are
// raised as Lua errors at the call site, so scripts can catch them
// with pcall; uncaught they terminate the script.
package luabind
