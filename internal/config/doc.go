// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates lunash configuration.
//
// Configuration is read from a TOML file in the platform config directory
// (see ConfigDir), with environment overrides under the LUNASH_ prefix.
// A missing config file is not an error; defaults apply.
package config
