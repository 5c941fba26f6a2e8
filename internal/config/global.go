// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	mu     sync.RWMutex
	cached *Config

	// configFilePathOverride is set by the --config flag.
	configFilePathOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
	// scriptsDirOverride allows tests to override the user scripts directory.
	scriptsDirOverride string
)

// Load reads the configuration through the default Provider, caches
// it, and returns it.
func Load() (*Config, error) {
	cfg, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	cached = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the cached configuration, loading it on first use.
// If loading fails, defaults are returned so callers always get a
// usable config; the error surfaces through Load at startup.
func Get() *Config {
	mu.RLock()
	if cached != nil {
		defer mu.RUnlock()
		return cached
	}
	mu.RUnlock()

	cfg, err := Load()
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// SetConfigFilePathOverride sets a custom config file path (--config flag).
func SetConfigFilePathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = path
	cached = nil
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = dir
	cached = nil
}

// SetScriptsDirOverride sets a custom user scripts directory path for tests.
func SetScriptsDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	scriptsDirOverride = dir
}

// Reset clears the cache and all overrides. Call from test cleanup to
// restore defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cached = nil
	configFilePathOverride = ""
	configDirOverride = ""
	scriptsDirOverride = ""
}
