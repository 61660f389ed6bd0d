package cmdgraph

import (
	"os"
	"regexp"
	"strings"

	"github.com/tngtech/kernelsbom/internal/diag"
)

// CmdFile is a parsed .cmd sidecar file (spec §3, §4.4).
type CmdFile struct {
	Path      PathStr
	Savedcmd  string
	Source    string // empty when absent
	Deps      []string
	MakeRules []string
}

var (
	savedcmdPattern = regexp.MustCompile(`^(saved)?cmd_[^:]*:=\s*(.+)$`)
	sourcePattern   = regexp.MustCompile(`^source_[^:]*:=\s*(.+)$`)
)

// ParseCmdFile reads and parses the .cmd file at path, recognizing the
// three legal shapes described in spec §4.4/§6: full form, command-only,
// and single-dependency.
func ParseCmdFile(path string) (*CmdFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, &ParseError{Command: path, Reason: "empty .cmd file"}
	}

	m := savedcmdPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, &ParseError{Command: path, Reason: "no savedcmd_ line found"}
	}
	savedcmd := m[2]

	if len(lines) == 1 {
		return &CmdFile{Path: path, Savedcmd: savedcmd}, nil
	}

	if len(lines) == 2 {
		dep := lines[1]
		if idx := strings.Index(dep, ":"); idx >= 0 {
			dep = dep[idx+1:]
		}
		return &CmdFile{Path: path, Savedcmd: savedcmd, Deps: []string{strings.TrimSpace(dep)}}, nil
	}

	src := sourcePattern.FindStringSubmatch(lines[1])
	if src == nil {
		diag.Default.Error("skip parsing %q because no source_ entry was found", path)
		return &CmdFile{Path: path, Savedcmd: savedcmd}, nil
	}

	var deps []string
	i := 3 // lines[2] is the deps_ assignment's own header, carrying no dependency itself.
	for ; i < len(lines); i++ {
		if !strings.HasSuffix(lines[i], `\`) {
			break
		}
		deps = append(deps, strings.TrimSpace(strings.TrimSuffix(lines[i], `\`)))
	}

	return &CmdFile{
		Path:      path,
		Savedcmd:  savedcmd,
		Source:    src[1],
		Deps:      deps,
		MakeRules: lines[i:],
	}, nil
}
