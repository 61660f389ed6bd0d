package cmdgraph

import "regexp"

// ParseError reports that a parser in the Tool Parser Registry rejected
// the argument shape of a command it otherwise claimed by pattern.
type ParseError struct {
	Command string
	Reason  string
}

func (e *ParseError) Error() string {
	return "cannot parse command \"" + e.Command + "\": " + e.Reason
}

// ParserFunc extracts the input paths a single command reads, per spec
// §4.3. It returns (nil, nil) when the command legitimately has no
// inputs (a no-op).
type ParserFunc func(command string) ([]PathStr, error)

// registryEntry pairs a dispatch pattern with the parser that handles
// commands it matches.
type registryEntry struct {
	name    string
	pattern *regexp.Regexp
	parse   ParserFunc
}

// Registry is an ordered list of (pattern, parser) pairs; the first
// pattern matching a command wins (spec §4.3, DESIGN NOTES §9).
type Registry struct {
	entries []registryEntry
}

func newRegistry(entries []registryEntry) *Registry {
	return &Registry{entries: entries}
}

// NewRegistry builds the standard top-level Tool Parser Registry. Order
// matters: compound groups and plain Unix utilities are tried first,
// then compilers and linkers, then kernel-specific build scripts.
func NewRegistry() *Registry {
	return newRegistry([]registryEntry{
		{"compound-paren", regexp.MustCompile(`(?s)\(.*?\)\s*>`), parseCompoundCommand},
		{"compound-brace", regexp.MustCompile(`(?s)\{.*?\}\s*>`), parseCompoundCommand},

		{"rm", regexp.MustCompile(`^rm\b`), parseNoInputs},
		{"mkdir", regexp.MustCompile(`^mkdir\b`), parseNoInputs},
		{"touch", regexp.MustCompile(`^touch\b`), parseNoInputs},
		{"cat-redirect", regexp.MustCompile(`^cat\b.*?[|>]`), parseCatRedirect},
		{"echo", regexp.MustCompile(`^echo[^|]*$`), parseNoInputs},
		{"sed-redirect", regexp.MustCompile(`^sed.*?>`), parseSedBeforeRedirect},
		{"sed", regexp.MustCompile(`^sed\b`), parseNoInputs},
		{"awk-in-out", regexp.MustCompile(`^awk.*?<.*?>`), parseAwkInOut},
		{"awk-out", regexp.MustCompile(`^awk.*?>`), parseAwkBeforeRedirect},
		{"true", regexp.MustCompile(`^(/bin/)?true\b`), parseNoInputs},
		{"false", regexp.MustCompile(`^(/bin/)?false\b`), parseNoInputs},
		{"openssl-req", regexp.MustCompile(`^openssl\s+req.*?-new.*?-keyout`), parseNoInputs},

		{"gcc-clang", regexp.MustCompile(`^([^\s]+-)?(gcc|clang)\b`), parseGccClang},
		{"ld", regexp.MustCompile(`^([^\s]+-)?ld(\.bfd)?\b`), parseLd},
		{"printf-xargs-ar", regexp.MustCompile(`^printf\b.*\|\s*xargs\s+([^\s]+-)?ar\b`), parsePrintfXargsAr},
		{"ar", regexp.MustCompile(`^([^\s]+-)?ar\b`), parseAr},
		{"nm-piped", regexp.MustCompile(`^([^\s]+-)?nm\b.*?\|`), parseNmPiped},
		{"objcopy", regexp.MustCompile(`^([^\s]+-)?objcopy\b`), parseObjcopy},
		{"strip", regexp.MustCompile(`^([^\s]+-)?strip\b`), parseStrip},
		{"rustc", regexp.MustCompile(`.*?rustc\b`), parseRustOrPerlLast(".rs")},
		{"rustdoc", regexp.MustCompile(`.*?rustdoc\b`), parseRustOrPerlLast(".rs")},
		{"flex", regexp.MustCompile(`^flex\b`), lastArgWithSuffix(".l")},
		{"bison", regexp.MustCompile(`^bison\b`), lastArgWithSuffix(".y")},
		{"bindgen", regexp.MustCompile(`^bindgen\b`), parseBindgen},
		{"perl", regexp.MustCompile(`^perl\b`), parsePerl},

		{"link-vmlinux", regexp.MustCompile(`^(.*/)?link-vmlinux\.sh\b`), parseLinkVmlinux},
		{"syscallhdr", regexp.MustCompile(`sh (.*/)?syscallhdr\.sh\b`), parseSyscallhdr},
		{"syscalltbl", regexp.MustCompile(`sh (.*/)?syscalltbl\.sh\b`), parseSyscalltbl},
		{"mkcapflags", regexp.MustCompile(`sh (.*/)?mkcapflags\.sh\b`), parseMkcapflags},
		{"orc-hash", regexp.MustCompile(`sh (.*/)?orc_hash\.sh\b`), parseOrcHash},
		{"xen-hypercalls", regexp.MustCompile(`sh (.*/)?xen-hypercalls\.sh\b`), parseXenHypercalls},
		{"gen-initramfs", regexp.MustCompile(`sh (.*/)?gen_initramfs\.sh\b`), parseGenInitramfs},
		{"checkundef", regexp.MustCompile(`sh (.*/)?checkundef\.sh\b`), parseNoInputs},
		{"vdso2c", regexp.MustCompile(`(.*/)?vdso2c\b`), parseVdso2c},
		{"mkpiggy", regexp.MustCompile(`^(.*/)?mkpiggy.*?>`), parseMkpiggy},
		{"relocs", regexp.MustCompile(`^(.*/)?relocs\b`), parseRelocs},
		{"mk-elfconfig", regexp.MustCompile(`^(.*/)?mk_elfconfig.*?<.*?>`), parseMkElfconfig},
		{"tools-build", regexp.MustCompile(`^(.*/)?tools/build\b`), parseToolsBuild},
		{"extract-cert", regexp.MustCompile(`^(.*/)?certs/extract-cert`), parseExtractCert},
		{"dtc", regexp.MustCompile(`^(.*/)?scripts/dtc/dtc\b`), parseDtc},
		{"pnmtologo", regexp.MustCompile(`^(.*/)?pnmtologo\b`), parsePnmToLogo},
		{"relacheck", regexp.MustCompile(`^(.*/)?kernel/pi/relacheck`), parseRelacheck},
		{"mkregtable", regexp.MustCompile(`^drivers/gpu/drm/radeon/mkregtable`), parseMkregtable},
		{"genheaders", regexp.MustCompile(`(.*/)?genheaders\b`), parseNoInputs},
		{"mkcpustr", regexp.MustCompile(`^(.*/)?mkcpustr\s+>`), parseNoInputs},
		{"polgen", regexp.MustCompile(`^(.*/)polgen\b`), parseNoInputs},
		{"postlink", regexp.MustCompile(`make -f .*/arch/x86/Makefile\.postlink`), parseNoInputs},
		{"mktables", regexp.MustCompile(`^(.*/)?raid6/mktables\s+>`), parseNoInputs},
		{"objtool", regexp.MustCompile(`^(.*/)?objtool\b`), parseNoInputs},
		{"gen-test-kallsyms", regexp.MustCompile(`^(.*/)?module/gen_test_kallsyms\.sh`), parseNoInputs},
		{"gen-header-py", regexp.MustCompile(`^(.*/)?gen_header\.py`), parseGenHeaderPy},
		{"rustdoc-test-gen", regexp.MustCompile(`^(.*/)?scripts/rustdoc_test_gen`), parseNoInputs},
	})
}

// Parse dispatches command to the first matching parser and returns its
// input paths. matched is false when no parser in the registry claimed
// the command (an "unknown build command", spec §7).
//
// Dispatch mirrors Python's re.match: a pattern must match starting at
// offset 0, not merely appear somewhere in the command. A handful of
// registry patterns (the compound-group entries, "sh ...", "make -f
// ...") are not written with a leading ^, so an unanchored search would
// let them claim a command where the pattern happens to match mid-string
// (e.g. a "(...)"-shaped $$(...) substitution before a later redirect),
// routing it to the wrong parser. Checking the leftmost match's start
// index against 0 reproduces re.match's anchoring for every entry
// without having to rewrite each pattern individually.
func (r *Registry) Parse(command string) (paths []PathStr, matched bool, err error) {
	for _, e := range r.entries {
		if loc := e.pattern.FindStringIndex(command); loc != nil && loc[0] == 0 {
			paths, err = e.parse(command)
			return paths, true, err
		}
	}
	return nil, false, nil
}
