// SPDX-License-Identifier: MPL-2.0

// Package runner orchestrates one script execution: resolve the name,
// load the source into a fresh Lua state with the host modules
// registered, execute it, and map failures to typed errors per phase.
package runner
