package cmdgraph

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandResponseFiles flattens `@file` entries (spec §6 "Response
// files"): any input beginning with `@` names a file, relative to
// objTree, whose non-blank lines are further input paths, expanded
// recursively.
func ExpandResponseFiles(inputs []PathStr, objTree string) ([]PathStr, error) {
	var out []PathStr
	for _, input := range inputs {
		if !strings.HasPrefix(input, "@") {
			out = append(out, input)
			continue
		}

		raw, err := os.ReadFile(filepath.Join(objTree, strings.TrimPrefix(input, "@")))
		if err != nil {
			return nil, err
		}

		var contents []PathStr
		for _, line := range strings.Split(string(raw), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				contents = append(contents, line)
			}
		}

		expanded, err := ExpandResponseFiles(contents, objTree)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
