// SPDX-License-Identifier: MPL-2.0

// Package resolve turns bare script names into script file paths via
// ordered search across the current directory, the per-user scripts
// directory, the LUA_SCRIPT_PATH environment variable, and configured
// extra directories.
package resolve
