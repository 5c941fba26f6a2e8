// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	lua "github.com/yuin/gopher-lua"

	"lunash-cli/internal/config"
	"lunash-cli/internal/luabind"
	"lunash-cli/internal/resolve"
)

// Phase identifies which stage of a run an error belongs to. Phases
// are strictly sequential and never retried; a failed phase ends the
// run with exactly one surfaced error.
type Phase int

const (
	// PhaseResolving maps the script name to a file path.
	PhaseResolving Phase = iota
	// PhaseLoading reads the source and prepares the Lua state.
	PhaseLoading
	// PhaseExecuting runs the compiled chunk.
	PhaseExecuting
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseResolving:
		return "resolving"
	case PhaseLoading:
		return "loading"
	case PhaseExecuting:
		return "executing"
	default:
		return "unknown"
	}
}

type (
	// LoadError is an IO failure reading a resolved script. The
	// interpreter is not involved yet; these are process-fatal.
	LoadError struct {
		Path string
		Err  error
	}

	// ScriptError is an uncaught interpreter-level error: a syntax
	// error in the chunk or a runtime error raised during execution
	// (including host module failures the script did not pcall).
	ScriptError struct {
		Path string
		Err  error
	}

	// Result describes a completed run.
	Result struct {
		// Path is the script file that was executed.
		Path string
		// Source is the search location that matched.
		Source resolve.Source
	}

	// Runner executes scripts. One Runner serves one CLI invocation;
	// every Run uses a fresh Lua state that is closed on return.
	Runner struct {
		cfg      *config.Config
		resolver *resolve.Resolver
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading script %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *LoadError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ScriptError) Unwrap() error { return e.Err }

// New creates a Runner whose search path is built from the process
// environment and cfg.
func New(cfg *config.Config) (*Runner, error) {
	resolver, err := resolve.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, resolver: resolver}, nil
}

// NewWithResolver creates a Runner over an explicit resolver.
// Intended for tests.
func NewWithResolver(cfg *config.Config, resolver *resolve.Resolver) *Runner {
	return &Runner{cfg: cfg, resolver: resolver}
}

// Resolver exposes the runner's search path for listing and completion.
func (r *Runner) Resolver() *resolve.Resolver {
	return r.resolver
}

// Run resolves and executes the named script. Extra args are exposed
// to the script through the conventional arg table: arg[0] holds the
// script path, arg[1..n] the arguments. Canceling ctx interrupts a
// running script.
func (r *Runner) Run(ctx context.Context, name string, args []string) (*Result, error) {
	resolved, err := r.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	slog.Debug("run phase done", "phase", PhaseResolving.String(), "path", resolved.Path)

	src, err := os.ReadFile(resolved.Path)
	if err != nil {
		return nil, &LoadError{Path: resolved.Path, Err: err}
	}

	L := lua.NewState()
	defer L.Close()
	if ctx != nil {
		L.SetContext(ctx)
	}

	luabind.New(r.cfg).RegisterAll(L)
	setArgTable(L, resolved.Path, args)

	fn, err := L.Load(bytes.NewReader(src), resolved.Path)
	if err != nil {
		return nil, &ScriptError{Path: resolved.Path, Err: err}
	}
	slog.Debug("run phase done", "phase", PhaseLoading.String(), "path", resolved.Path)

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, &ScriptError{Path: resolved.Path, Err: err}
	}
	slog.Debug("run phase done", "phase", PhaseExecuting.String(), "path", resolved.Path)

	return &Result{Path: resolved.Path, Source: resolved.Source}, nil
}

// setArgTable installs the conventional Lua arg table.
func setArgTable(L *lua.LState, scriptPath string, args []string) {
	tbl := L.NewTable()
	tbl.RawSetInt(0, lua.LString(scriptPath))
	for i, arg := range args {
		tbl.RawSetInt(i+1, lua.LString(arg))
	}
	L.SetGlobal("arg", tbl)
}
