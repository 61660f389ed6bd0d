package cmdgraph

import "path/filepath"

// ResolveWorkingDirectory implements the four-probe heuristic of spec
// §4.6: command strings quote paths relative to a working directory the
// build system never records, so the resolver infers it from the first
// input that can actually be found on disk.
//
// targetPath and the returned working directory are both relative to
// objTree. ok is false when none of the four probes succeed (spec §7,
// "Unresolvable working directory").
func ResolveWorkingDirectory(firstInput, targetPath, objTree, srcTree string) (workingDir string, ok bool) {
	targetDir := filepath.Dir(targetPath)

	if fileExists(filepath.Join(objTree, targetDir, firstInput)) {
		return targetDir, true
	}
	if fileExists(filepath.Join(objTree, firstInput)) {
		return ".", true
	}
	if hasPathPrefix(targetPath, "tools/objtool/arch/x86") {
		rel, err := filepath.Rel(objTree, srcTree)
		if err != nil {
			return "", false
		}
		return filepath.Join(rel, "tools/objtool"), true
	}
	if hasPathPrefix(targetPath, "tools/objtool/libsubcmd") {
		rel, err := filepath.Rel(objTree, srcTree)
		if err != nil {
			return "", false
		}
		return filepath.Join(rel, "tools/lib/subcmd"), true
	}
	return "", false
}

// hasPathPrefix reports whether path starts with prefix on a
// component boundary (not merely as a string prefix).
func hasPathPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}
