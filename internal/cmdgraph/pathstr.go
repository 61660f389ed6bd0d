// Package cmdgraph implements the Command-Graph Engine: it reconstructs
// a build-artifact dependency DAG for a Linux kernel build from the
// .cmd sidecar files the kbuild system leaves next to every object it
// produces (spec §1–§4).
//
// Known limitation (spec DESIGN NOTES §9, Open Question 2): the
// Working-Directory Resolver commits to a base directory using only the
// first resolved input of a command. If later inputs of the same
// command live under a different base, they will silently fail to
// resolve. No kernel build observed while grounding this package
// triggers that case, but it is not enforced here either.
package cmdgraph

import (
	"os"
	"path/filepath"
	"strings"
)

// PathStr is a filesystem path. Equality is bytewise on the normalized
// absolute form (spec §3).
type PathStr = string

// normalizeAbs resolves path (joined onto base if relative) to an
// absolute, cleaned form. It only follows symlinks when the final path
// component is itself a symlink, mirroring
// original_source/sbom/sbom/path_utils.py's "realpath if islink else
// normpath" — a symlinked parent directory earlier in the path is left
// unresolved. This is the "node identity" computation used by the Graph
// Builder (spec §4.7 step 1).
func normalizeAbs(base, path string) string {
	joined := path
	if !filepath.IsAbs(joined) {
		joined = filepath.Join(base, path)
	}
	if info, err := os.Lstat(joined); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if target, err := filepath.EvalSymlinks(joined); err == nil {
			return target
		}
	}
	return filepath.Clean(joined)
}

// isRelativeTo reports whether path lies within base, mirroring
// original_source/sbom/sbom/path_utils.py's is_relative_to (os.path
// .commonpath([path, base]) == base).
func isRelativeTo(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// fileExists reports whether path exists on disk (regular file, dir, or
// otherwise), without following a final symlink into an error.
func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
