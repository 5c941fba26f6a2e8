// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultHTTPTimeoutSeconds is the request timeout applied to the
	// http scripting module when the config file does not set one.
	DefaultHTTPTimeoutSeconds = 30
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidHTTPTimeout is returned when http.timeout_seconds is zero or negative.
	ErrInvalidHTTPTimeout = errors.New("invalid http timeout")
	// ErrInvalidScriptPathEntry is returned when a script_path entry is whitespace-only.
	ErrInvalidScriptPathEntry = errors.New("invalid script_path entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the terminal rendering palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError aggregates all validation failures of a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Errors []error
	}

	// HTTPConfig controls the http scripting module.
	HTTPConfig struct {
		// TimeoutSeconds bounds each HTTP request issued by a script.
		TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
	}

	// UIConfig controls CLI rendering behavior.
	UIConfig struct {
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
		Verbose     bool        `mapstructure:"verbose" toml:"verbose"`
	}

	// Config is the root lunash configuration.
	Config struct {
		// ScriptPath lists extra directories searched for scripts, after
		// the current directory, the user scripts directory, and the
		// LUA_SCRIPT_PATH entries.
		ScriptPath []string `mapstructure:"script_path" toml:"script_path"`

		HTTP HTTPConfig `mapstructure:"http" toml:"http"`
		UI   UIConfig   `mapstructure:"ui" toml:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("%v: %q (expected %q, %q or %q)",
		ErrInvalidColorScheme, e.Value, ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight)
}

// Unwrap returns the sentinel for errors.Is chains.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%v: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Unwrap returns the sentinel for errors.Is chains.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid reports whether the ColorScheme is one of the known values.
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	default:
		return false
	}
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		ScriptPath: []string{},
		HTTP: HTTPConfig{
			TimeoutSeconds: DefaultHTTPTimeoutSeconds,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Validate checks constraints viper cannot express during unmarshalling.
// All violations are collected into a single InvalidConfigError.
func (c *Config) Validate() error {
	var errs []error

	if !c.UI.ColorScheme.IsValid() {
		errs = append(errs, &InvalidColorSchemeError{Value: c.UI.ColorScheme})
	}

	if c.HTTP.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: timeout_seconds must be positive, got %d",
			ErrInvalidHTTPTimeout, c.HTTP.TimeoutSeconds))
	}

	for i, entry := range c.ScriptPath {
		if strings.TrimSpace(entry) == "" {
			errs = append(errs, fmt.Errorf("%w: script_path[%d] is empty", ErrInvalidScriptPathEntry, i))
		}
	}

	if len(errs) > 0 {
		return &InvalidConfigError{Errors: errs}
	}
	return nil
}
