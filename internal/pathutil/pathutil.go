// Package pathutil holds the single workspace-relative path rule shared
// by the scope matcher and the VCS probe, so the two never drift.
package pathutil

import (
	"path/filepath"
	"strings"
)

// RelativeSlash returns a POSIX-separated path for absPath relative to
// base. If absPath is not under base, it is returned unchanged
// (POSIX-normalized) — callers treat that as "never matches a
// workspace-relative pattern" rather than as an error.
func RelativeSlash(base, absPath string) string {
	rel, err := filepath.Rel(base, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}
