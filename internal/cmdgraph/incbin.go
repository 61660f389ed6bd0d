package cmdgraph

import (
	"os"
	"regexp"
	"strings"
)

// IncbinStatement is a parsed `.incbin "<path>"` directive (spec §3).
type IncbinStatement struct {
	Path          PathStr
	FullStatement string
}

var incbinPattern = regexp.MustCompile(`\s*\.incbin\s+"([^"]+)"`)

// ParseIncbin scans the assembly file at absolutePath for `.incbin`
// directives (spec §4.3, applied only to `.S` files per §4.7 step 8).
func ParseIncbin(absolutePath string) ([]IncbinStatement, error) {
	raw, err := os.ReadFile(absolutePath)
	if err != nil {
		return nil, err
	}

	var statements []IncbinStatement
	for _, m := range incbinPattern.FindAllStringSubmatch(string(raw), -1) {
		statements = append(statements, IncbinStatement{
			Path:          m[1],
			FullStatement: strings.TrimSpace(m[0]),
		})
	}
	return statements, nil
}
