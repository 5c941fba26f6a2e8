// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lunash-cli/internal/config"
	"lunash-cli/pkg/platform"
)

const (
	// ScriptFileSuffix is appended to a script name to form its filename.
	ScriptFileSuffix = ".lunash.lua"

	// EnvScriptPath is the environment variable holding extra search
	// directories, separated with the platform path-list separator.
	EnvScriptPath = "LUA_SCRIPT_PATH"
)

// ErrInvalidScriptName is returned for names that are not bare identifiers.
var ErrInvalidScriptName = errors.New("invalid script name")

// Source represents where a script was found
type Source int

const (
	// SourceCurrentDir indicates the script was found in the current directory
	SourceCurrentDir Source = iota
	// SourceUserDir indicates the script was found in the per-user scripts directory
	SourceUserDir
	// SourceEnvPath indicates the script was found via LUA_SCRIPT_PATH
	SourceEnvPath
	// SourceConfigPath indicates the script was found in a configured search path
	SourceConfigPath
)

// String returns a human-readable source name
func (s Source) String() string {
	switch s {
	case SourceCurrentDir:
		return "current directory"
	case SourceUserDir:
		return "user scripts directory"
	case SourceEnvPath:
		return "LUA_SCRIPT_PATH"
	case SourceConfigPath:
		return "configured search path"
	default:
		return "unknown"
	}
}

type (
	// Location is a single searched directory with its provenance.
	Location struct {
		Dir    string
		Source Source
	}

	// ResolvedScript is the outcome of a successful resolution.
	ResolvedScript struct {
		// Name is the bare script name that was resolved.
		Name string
		// Path is the absolute path of the script file.
		Path string
		// Source indicates which search location matched.
		Source Source
	}

	// DiscoveredScript is one entry of a full search-path listing.
	DiscoveredScript struct {
		Name   string
		Path   string
		Source Source
	}

	// NotFoundError is returned when no search location holds the script.
	// It carries every searched location for user diagnostics.
	NotFoundError struct {
		Name     string
		Searched []Location
	}

	// Resolver probes an ordered, immutable list of search locations.
	// The environment and configuration are read once at construction so
	// repeated resolutions within one invocation are deterministic.
	Resolver struct {
		locations []Location
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "script %q not found; searched:", e.Name)
	for _, loc := range e.Searched {
		fmt.Fprintf(&sb, "\n  - %s (%s)", loc.Dir, loc.Source)
	}
	return sb.String()
}

// New builds a Resolver from the process environment and the given config.
// Search order: current directory, per-user scripts directory,
// LUA_SCRIPT_PATH entries, configured script_path entries.
func New(cfg *config.Config) (*Resolver, error) {
	var locations []Location

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}
	locations = append(locations, Location{Dir: cwd, Source: SourceCurrentDir})

	userDir, err := config.ScriptsDir()
	if err != nil {
		// Degrade to the remaining locations rather than failing the run.
		slog.Debug("user scripts directory unavailable", "error", err)
	} else {
		locations = append(locations, Location{Dir: userDir, Source: SourceUserDir})
	}

	for _, dir := range filepath.SplitList(os.Getenv(EnvScriptPath)) {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		locations = append(locations, Location{Dir: dir, Source: SourceEnvPath})
	}

	if cfg != nil {
		for _, dir := range cfg.ScriptPath {
			locations = append(locations, Location{Dir: dir, Source: SourceConfigPath})
		}
	}

	return &Resolver{locations: locations}, nil
}

// NewWithLocations builds a Resolver over an explicit location list.
// Intended for tests and for callers that already resolved their search
// path.
func NewWithLocations(locations []Location) *Resolver {
	return &Resolver{locations: locations}
}

// Locations returns a copy of the ordered search locations.
func (r *Resolver) Locations() []Location {
	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// ValidateName rejects names that are not bare identifiers: empty
// strings, names with path separators, and names that already carry
// the script extension.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidScriptName)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidScriptName, name)
	case strings.HasSuffix(name, ScriptFileSuffix):
		return fmt.Errorf("%w: %q already has the %s suffix; pass the bare name", ErrInvalidScriptName, name, ScriptFileSuffix)
	case platform.IsWindowsReservedName(name):
		return fmt.Errorf("%w: %q is a reserved filename on Windows", ErrInvalidScriptName, name)
	}
	return nil
}

// Resolve returns the first search location holding <name>.lunash.lua.
// Resolution is strictly ordered and stops at the first readable match;
// later locations never override earlier ones.
func (r *Resolver) Resolve(name string) (*ResolvedScript, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	filename := name + ScriptFileSuffix

	for _, loc := range r.locations {
		candidate := filepath.Join(loc.Dir, filename)
		if !readableFile(candidate) {
			continue
		}

		abs, err := filepath.Abs(candidate)
		if err != nil {
			return nil, fmt.Errorf("resolving absolute path for %s: %w", candidate, err)
		}

		slog.Debug("script resolved", "name", name, "path", abs, "source", loc.Source.String())
		return &ResolvedScript{Name: name, Path: abs, Source: loc.Source}, nil
	}

	return nil, &NotFoundError{Name: name, Searched: r.Locations()}
}

// List enumerates every script reachable through the search path, in
// source order, deduplicated by name: the first occurrence shadows any
// later one, mirroring Resolve precedence. Entries within one directory
// are sorted by name.
func (r *Resolver) List() []DiscoveredScript {
	var out []DiscoveredScript
	seen := make(map[string]bool)

	for _, loc := range r.locations {
		entries, err := os.ReadDir(loc.Dir)
		if err != nil {
			slog.Debug("skipping unreadable search location", "dir", loc.Dir, "error", err)
			continue
		}

		var names []string
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ScriptFileSuffix) {
				continue
			}
			names = append(names, strings.TrimSuffix(entry.Name(), ScriptFileSuffix))
		}
		sort.Strings(names)

		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			abs, err := filepath.Abs(filepath.Join(loc.Dir, name+ScriptFileSuffix))
			if err != nil {
				continue
			}
			out = append(out, DiscoveredScript{Name: name, Path: abs, Source: loc.Source})
		}
	}

	return out
}

// readableFile reports whether path is a regular file the process can open.
func readableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
