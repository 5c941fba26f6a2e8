// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name+ScriptFileSuffix)
	if err := os.WriteFile(path, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSource_String(t *testing.T) {
	tests := []struct {
		source   Source
		expected string
	}{
		{SourceCurrentDir, "current directory"},
		{SourceUserDir, "user scripts directory"},
		{SourceEnvPath, "LUA_SCRIPT_PATH"},
		{SourceConfigPath, "configured search path"},
		{Source(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.source.String(); got != tt.expected {
				t.Errorf("Source(%d).String() = %s, want %s", tt.source, got, tt.expected)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"deploy", false},
		{"build_all", false},
		{"", true},
		{"a/b", true},
		{`a\b`, true},
		{"deploy.lunash.lua", true},
		{"con", true},
		{"NUL", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr && !errors.Is(err, ErrInvalidScriptName) {
				t.Errorf("ValidateName(%q) = %v, want ErrInvalidScriptName", tt.name, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.name, err)
			}
		})
	}
}

func TestResolve_PriorityOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeScript(t, first, "deploy")
	writeScript(t, second, "deploy")

	r := NewWithLocations([]Location{
		{Dir: first, Source: SourceCurrentDir},
		{Dir: second, Source: SourceUserDir},
	})

	got, err := r.Resolve("deploy")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Source != SourceCurrentDir {
		t.Errorf("Source = %v, want SourceCurrentDir", got.Source)
	}
	if filepath.Dir(got.Path) != first {
		t.Errorf("Path = %q, want file under %q", got.Path, first)
	}
}

func TestResolve_FallsThroughToLater(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	want := writeScript(t, second, "deploy")

	r := NewWithLocations([]Location{
		{Dir: first, Source: SourceCurrentDir},
		{Dir: second, Source: SourceEnvPath},
	})

	got, err := r.Resolve("deploy")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Path != want {
		t.Errorf("Path = %q, want %q", got.Path, want)
	}
	if got.Source != SourceEnvPath {
		t.Errorf("Source = %v, want SourceEnvPath", got.Source)
	}
}

func TestResolve_NotFoundListsAllLocations(t *testing.T) {
	dirs := []string{t.TempDir(), t.TempDir(), t.TempDir()}

	r := NewWithLocations([]Location{
		{Dir: dirs[0], Source: SourceCurrentDir},
		{Dir: dirs[1], Source: SourceUserDir},
		{Dir: dirs[2], Source: SourceEnvPath},
	})

	_, err := r.Resolve("missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve() error = %T, want *NotFoundError", err)
	}
	if nf.Name != "missing" {
		t.Errorf("Name = %q, want missing", nf.Name)
	}
	if len(nf.Searched) != 3 {
		t.Fatalf("Searched has %d entries, want 3", len(nf.Searched))
	}
	msg := nf.Error()
	for _, dir := range dirs {
		if !strings.Contains(msg, dir) {
			t.Errorf("Error() should mention %q:\n%s", dir, msg)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeScript(t, first, "deploy")
	writeScript(t, second, "deploy")

	r := NewWithLocations([]Location{
		{Dir: first, Source: SourceCurrentDir},
		{Dir: second, Source: SourceUserDir},
	})

	var paths []string
	for range 5 {
		got, err := r.Resolve("deploy")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		paths = append(paths, got.Path)
	}
	for _, p := range paths[1:] {
		if p != paths[0] {
			t.Fatalf("Resolve() not deterministic: %v", paths)
		}
	}
}

func TestResolve_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	// A directory with a matching name must not resolve.
	if err := os.Mkdir(filepath.Join(dir, "deploy"+ScriptFileSuffix), 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewWithLocations([]Location{{Dir: dir, Source: SourceCurrentDir}})
	if _, err := r.Resolve("deploy"); err == nil {
		t.Fatal("Resolve() matched a directory, want NotFoundError")
	}
}

func TestNew_ReadsEnvOnce(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(EnvScriptPath, envDir)

	r, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Mutating the environment after construction must not change the
	// search path.
	t.Setenv(EnvScriptPath, t.TempDir())

	found := false
	for _, loc := range r.Locations() {
		if loc.Source == SourceEnvPath && loc.Dir == envDir {
			found = true
		}
	}
	if !found {
		t.Errorf("Locations() = %v, want entry for %q", r.Locations(), envDir)
	}
}

func TestNew_SplitsEnvEntries(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	t.Setenv(EnvScriptPath, a+string(os.PathListSeparator)+b)

	r, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var envDirs []string
	for _, loc := range r.Locations() {
		if loc.Source == SourceEnvPath {
			envDirs = append(envDirs, loc.Dir)
		}
	}
	if len(envDirs) != 2 || envDirs[0] != a || envDirs[1] != b {
		t.Errorf("env locations = %v, want [%s %s] in order", envDirs, a, b)
	}
}

func TestList_DeduplicatesByPrecedence(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeScript(t, first, "deploy")
	writeScript(t, second, "deploy")
	writeScript(t, second, "backup")

	r := NewWithLocations([]Location{
		{Dir: first, Source: SourceCurrentDir},
		{Dir: second, Source: SourceUserDir},
	})

	scripts := r.List()
	if len(scripts) != 2 {
		t.Fatalf("List() returned %d scripts, want 2: %v", len(scripts), scripts)
	}
	if scripts[0].Name != "deploy" || scripts[0].Source != SourceCurrentDir {
		t.Errorf("scripts[0] = %+v, want deploy from current directory", scripts[0])
	}
	if scripts[1].Name != "backup" || scripts[1].Source != SourceUserDir {
		t.Errorf("scripts[1] = %+v, want backup from user scripts directory", scripts[1])
	}
}

func TestList_SkipsMissingDirs(t *testing.T) {
	r := NewWithLocations([]Location{
		{Dir: filepath.Join(t.TempDir(), "does-not-exist"), Source: SourceCurrentDir},
	})
	if got := r.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}
