// SPDX-License-Identifier: MPL-2.0

// Package fspath centralizes the path semantics shared by the script
// resolver and the fs scripting module: final-component extraction,
// parent lookup with an explicit no-parent failure, and one-level
// symlink resolution.
package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoParent is returned by Parent when a path has no parent directory
// (a filesystem root or an empty path).
var ErrNoParent = errors.New("path has no parent directory")

// Basename returns the final component of path with all directory
// prefixes stripped. Pure string operation, no filesystem access.
func Basename(path string) string {
	return filepath.Base(path)
}

// Parent returns the parent directory of path. Unlike filepath.Dir it
// fails when the path has no parent, e.g. "/" or "C:\".
func Parent(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%q: %w", path, ErrNoParent)
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Dir(cleaned)
	if parent == cleaned {
		return "", fmt.Errorf("%q: %w", path, ErrNoParent)
	}
	return parent, nil
}

// Readlink resolves a symbolic link one level and returns its target.
// The target is returned as stored; it is not made absolute and not
// resolved recursively.
func Readlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("reading symlink: %w", err)
	}
	return target, nil
}
