// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lunash-cli/internal/config"
	"lunash-cli/internal/resolve"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+resolve.ScriptFileSuffix)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newRunner(t *testing.T, dir string) *Runner {
	t.Helper()
	r := resolve.NewWithLocations([]resolve.Location{
		{Dir: dir, Source: resolve.SourceCurrentDir},
	})
	return NewWithResolver(config.DefaultConfig(), r)
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseResolving, "resolving"},
		{PhaseLoading, "loading"},
		{PhaseExecuting, "executing"},
		{Phase(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestRun_Succeeds(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	writeScript(t, dir, "hello", `
		local f = io.open(arg[1], "w")
		f:write("done")
		f:close()
	`)

	run := newRunner(t, dir)
	res, err := run.Run(context.Background(), "hello", []string{marker})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Source != resolve.SourceCurrentDir {
		t.Errorf("Source = %v, want SourceCurrentDir", res.Source)
	}

	data, err := os.ReadFile(marker)
	if err != nil || string(data) != "done" {
		t.Errorf("script side effect missing: %v %q", err, data)
	}
}

func TestRun_NotFound(t *testing.T) {
	run := newRunner(t, t.TempDir())

	_, err := run.Run(context.Background(), "missing", nil)
	var nf *resolve.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Run() error = %T, want *resolve.NotFoundError", err)
	}
}

func TestRun_InvalidName(t *testing.T) {
	run := newRunner(t, t.TempDir())

	if _, err := run.Run(context.Background(), "../escape", nil); !errors.Is(err, resolve.ErrInvalidScriptName) {
		t.Fatalf("Run() error = %v, want ErrInvalidScriptName", err)
	}
}

func TestRun_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken", `this is not lua at all (`)

	run := newRunner(t, dir)
	_, err := run.Run(context.Background(), "broken", nil)
	var se *ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("Run() error = %T, want *ScriptError", err)
	}
}

func TestRun_RuntimeError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "explode", `error("kaboom")`)

	run := newRunner(t, dir)
	_, err := run.Run(context.Background(), "explode", nil)
	var se *ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("Run() error = %T, want *ScriptError", err)
	}
}

func TestRun_BindingErrorCaughtInScript(t *testing.T) {
	dir := t.TempDir()
	// A host failure wrapped in pcall must not fail the run.
	writeScript(t, dir, "catcher", `
		local ok, err = pcall(function() return regex("[bad") end)
		if ok then error("expected the pattern to be rejected") end
	`)

	run := newRunner(t, dir)
	if _, err := run.Run(context.Background(), "catcher", nil); err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
}

func TestRun_BindingsAvailable(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "modules", `
		assert(stringx:trim("  x ") == "x")
		assert(fs:basename("/a/b/c.txt") == "c.txt")
		assert(regex("\\d+"):is_match("42"))
	`)

	run := newRunner(t, dir)
	if _, err := run.Run(context.Background(), "modules", nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_ArgTable(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "args.txt")
	writeScript(t, dir, "args", `
		local f = io.open(arg[2], "w")
		f:write(arg[0] .. "|" .. arg[1])
		f:close()
	`)

	run := newRunner(t, dir)
	res, err := run.Run(context.Background(), "args", []string{"first", out})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := res.Path + "|first"
	if string(data) != want {
		t.Errorf("arg table = %q, want %q", data, want)
	}
}

func TestRun_ContextCancelInterrupts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "spin", `while true do end`)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	run := newRunner(t, dir)
	done := make(chan error, 1)
	go func() {
		_, err := run.Run(ctx, "spin", nil)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Run() of an infinite loop returned nil after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after context deadline")
	}
}

func TestRun_FreshStatePerRun(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "leaky", `leak = (leak or 0) + 1; assert(leak == 1)`)

	run := newRunner(t, dir)
	for range 2 {
		if _, err := run.Run(context.Background(), "leaky", nil); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
}
