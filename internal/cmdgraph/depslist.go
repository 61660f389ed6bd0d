package cmdgraph

import (
	"regexp"
	"strings"

	"github.com/tngtech/kernelsbom/internal/diag"
)

var (
	configStampPattern  = regexp.MustCompile(`^\$\(wildcard (include/config/[^)]+)\)`)
	objtoolProbePattern = regexp.MustCompile(`^\$\(wildcard \./tools/objtool/objtool\)`)
	wildcardPattern     = regexp.MustCompile(`^\$\(wildcard ([^)]+)\)`)
	validPathPattern    = regexp.MustCompile(`^(/)?(([\w\-., ]*)/)*[\w\-., ]+$`)
)

// ParseCmdFileDeps converts the raw deps_ entries of a .cmd file into
// input paths (spec §4.5), dropping Kconfig stamps and the objtool
// existence probe along the way.
func ParseCmdFileDeps(deps []string) []PathStr {
	var inputs []PathStr
	for _, raw := range deps {
		dep := strings.TrimSpace(raw)
		switch {
		case configStampPattern.MatchString(dep), objtoolProbePattern.MatchString(dep):
			continue
		case wildcardPattern.MatchString(dep):
			m := wildcardPattern.FindStringSubmatch(dep)
			inputs = append(inputs, m[1])
		case validPathPattern.MatchString(dep):
			inputs = append(inputs, dep)
		default:
			diag.Default.Error("skip parsing dependency %q because of unrecognized format", dep)
		}
	}
	return inputs
}
