package cmdgraph

import (
	"path/filepath"
	"strings"

	"github.com/tngtech/kernelsbom/internal/diag"
	"github.com/tngtech/kernelsbom/internal/env"
)

// hardcodedDependencies is the table of build-graph edges kbuild's
// .cmd mechanism never emits (spec §4.6, DESIGN NOTES §9 Open Question
// 3). Entries are keyed by path relative to obj_tree or src_tree; values
// may contain an "{arch}" placeholder expanded from SRCARCH.
var hardcodedDependencies = map[string][]string{
	"include/generated/rq-offsets.h":  {"kernel/sched/rq-offsets.s"},
	"kernel/sched/rq-offsets.s":       {"include/generated/asm-offsets.h"},
	"include/generated/bounds.h":      {"kernel/bounds.s"},
	"include/generated/asm-offsets.h": {"arch/{arch}/kernel/asm-offsets.s"},
}

// HardcodedDependencies looks up path (an absolute file path) in the
// built-in dependency table and returns its dependency paths, relative
// to objTree, expanding the "{arch}" template from environment.
func HardcodedDependencies(path, objTree, srcTree string, environment *env.Environment) []PathStr {
	var key string
	switch {
	case isRelativeTo(path, objTree):
		key, _ = filepath.Rel(objTree, path)
	case isRelativeTo(path, srcTree):
		key, _ = filepath.Rel(srcTree, path)
	default:
		return nil
	}

	templates, ok := hardcodedDependencies[key]
	if !ok {
		return nil
	}

	var deps []PathStr
	for _, template := range templates {
		dep, ok := expandArchTemplate(template, environment)
		if !ok {
			diag.Default.Error("skip architecture-specific hardcoded dependency for %q because the SRCARCH environment variable was not set", key)
			continue
		}
		switch {
		case fileExists(filepath.Join(objTree, dep)):
			deps = append(deps, dep)
		case fileExists(filepath.Join(srcTree, dep)):
			rel, err := filepath.Rel(objTree, filepath.Join(srcTree, dep))
			if err != nil {
				rel = dep
			}
			deps = append(deps, rel)
		default:
			diag.Default.Error("skip hardcoded dependency %q for %q because it lies neither in the src tree nor the object tree", dep, key)
		}
	}
	return deps
}

func expandArchTemplate(template string, environment *env.Environment) (string, bool) {
	const placeholder = "{arch}"
	if !strings.Contains(template, placeholder) {
		return template, true
	}
	arch, ok := environment.SRCARCH()
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(template, placeholder, arch), true
}
