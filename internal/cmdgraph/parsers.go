package cmdgraph

import (
	"regexp"
	"strings"

	"github.com/google/shlex"

	"github.com/tngtech/kernelsbom/internal/diag"
)

// rawSplit performs plain POSIX-ish shell splitting with no $$(...)
// protection, matching the tool parsers (gcc, rustc, flex, bison, …)
// that call shlex.split directly rather than going through Tokenize.
func rawSplit(command string) ([]string, error) {
	words, err := shlex.Split(command)
	if err != nil {
		return nil, &TokenizeError{Command: command, Reason: err.Error()}
	}
	return words, nil
}

// positionalsOnly tokenizes command with Tokenize and returns just the
// Positional values, silently dropping any Options — used by parsers
// whose tool takes flags the parser doesn't care about.
func positionalsOnly(command string, flagOptions []string) ([]string, error) {
	tokens, err := Tokenize(command, flagOptions)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if p, ok := t.(Positional); ok {
			out = append(out, p.Value)
		}
	}
	return out, nil
}

// cutAt returns the portion of s before the first occurrence of sep, or
// s unchanged if sep does not occur.
func cutAt(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

func parseNoInputs(string) ([]PathStr, error) {
	return nil, nil
}

// --- dd / cat / sed / awk -------------------------------------------------

var ddIfPattern = regexp.MustCompile(`dd.*?if=(\S+)`)

func parseDd(command string) ([]PathStr, error) {
	if m := ddIfPattern.FindStringSubmatch(command); m != nil {
		return []PathStr{m[1]}, nil
	}
	return nil, nil
}

func parseCatCommand(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, nil
	}
	return positionals[1:], nil
}

func parseCatRedirect(command string) ([]PathStr, error) {
	return parseCatCommand(cutAt(cutAt(command, "|"), ">"))
}

func parseSedCommand(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}
	input := parts[len(parts)-1]
	if input == "/dev/null" {
		return nil, nil
	}
	return []PathStr{input}, nil
}

func parseSedBeforeRedirect(command string) ([]PathStr, error) {
	return parseSedCommand(cutAt(command, ">"))
}

func parseAwk(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(command, nil)
	if err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, nil
	}
	return positionals[1:], nil
}

func parseAwkBeforeRedirect(command string) ([]PathStr, error) {
	return parseAwk(cutAt(command, ">"))
}

func parseAwkInOut(command string) ([]PathStr, error) {
	parts := strings.SplitN(command, "<", 2)
	if len(parts) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected a '<' redirect"}
	}
	return []PathStr{strings.TrimSpace(cutAt(parts[1], ">"))}, nil
}

// --- object tooling: objcopy / strip / ar / nm ----------------------------

func parseObjcopy(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(command, []string{"-S", "-w"})
	if err != nil {
		return nil, err
	}
	if len(positionals) != 2 && len(positionals) != 3 {
		return nil, &ParseError{Command: command, Reason: "expected 2 or 3 positional arguments"}
	}
	return []PathStr{positionals[1]}, nil
}

func parseStrip(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(command, []string{"--strip-debug"})
	if err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, nil
	}
	return positionals[1:], nil
}

func parseAr(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected ar flags argument"}
	}
	if !strings.Contains(positionals[1], "r") {
		return nil, nil
	}
	if len(positionals) < 3 {
		return nil, nil
	}
	return positionals[3:], nil
}

func parsePrintfXargsAr(command string) ([]PathStr, error) {
	parts := strings.SplitN(command, "|", 2)
	positionals, err := TokenizePositionalsOnly(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected a printf format string"}
	}
	prefix := strings.TrimRight(positionals[1], "%s ")
	names := positionals[2:]
	out := make([]PathStr, 0, len(names))
	for _, name := range names {
		out = append(out, prefix+name)
	}
	return out, nil
}

func parseNmPiped(command string) ([]PathStr, error) {
	parts := strings.SplitN(command, "|", 2)
	positionals, err := positionalsOnly(strings.TrimSpace(parts[0]), []string{"p", "--defined-only"})
	if err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, nil
	}
	return positionals[1:], nil
}

// --- compilers: gcc/clang, ld, rustc/rustdoc, flex/bison, bindgen, perl ---

func parseGccClang(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if !strings.HasPrefix(p, "-") && (strings.HasSuffix(p, ".c") || strings.HasSuffix(p, ".S")) {
			return []PathStr{p}, nil
		}
	}
	var out []PathStr
	for _, p := range parts {
		if strings.HasSuffix(p, ".o") {
			out = append(out, p)
		}
	}
	return out, nil
}

var ldFlagOptions = []string{
	"-shared", "--no-undefined", "--eh-frame-hdr", "-Bsymbolic", "-r",
	"--no-ld-generated-unwind-info", "--no-dynamic-linker", "-pie",
	"--no-dynamic-linker--whole-archive", "--whole-archive", "--no-whole-archive",
	"--start-group", "--end-group",
}

func parseLd(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(strings.TrimSpace(command), ldFlagOptions)
	if err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, nil
	}
	return positionals[1:], nil
}

func lastArgWithSuffix(suffix string) ParserFunc {
	return func(command string) ([]PathStr, error) {
		parts, err := rawSplit(command)
		if err != nil {
			return nil, err
		}
		for i := len(parts) - 1; i >= 0; i-- {
			p := parts[i]
			if !strings.HasPrefix(p, "-") && strings.HasSuffix(p, suffix) {
				return []PathStr{p}, nil
			}
		}
		return nil, &ParseError{Command: command, Reason: "could not find " + suffix + " input source file"}
	}
}

func parseRustOrPerlLast(suffix string) ParserFunc {
	return lastArgWithSuffix(suffix)
}

func parseBindgen(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	var out []PathStr
	for _, p := range parts {
		if strings.HasSuffix(p, ".h") {
			out = append(out, p)
		}
	}
	return out, nil
}

func parsePerl(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(strings.TrimSpace(command))
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected an input file argument"}
	}
	return []PathStr{positionals[1]}, nil
}

// --- kernel-specific build scripts ----------------------------------------

func parseLinkVmlinux(string) ([]PathStr, error) {
	return []PathStr{"vmlinux.a"}, nil
}

func parseSyscallhdr(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(strings.TrimSpace(command), []string{"--emit-nr"})
	if err != nil {
		return nil, err
	}
	if len(positionals) < 3 {
		return nil, &ParseError{Command: command, Reason: "expected tool, script, input, output"}
	}
	return []PathStr{positionals[2]}, nil
}

func parseSyscalltbl(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(strings.TrimSpace(command), nil)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 3 {
		return nil, &ParseError{Command: command, Reason: "expected tool, script, input, output"}
	}
	return []PathStr{positionals[2]}, nil
}

func parseMkcapflags(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 5 {
		return nil, &ParseError{Command: command, Reason: "expected tool, script, output, input1, input2"}
	}
	return []PathStr{positionals[3], positionals[4]}, nil
}

func parseOrcHash(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 4 {
		return nil, &ParseError{Command: command, Reason: "expected tool, script, '<', input"}
	}
	return []PathStr{positionals[3]}, nil
}

func parseXenHypercalls(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 3 {
		return nil, nil
	}
	return positionals[3:], nil
}

func parseGenInitramfs(command string) ([]PathStr, error) {
	positionals, err := positionalsOnly(command, nil)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, nil
	}
	return positionals[2:], nil
}

func parseVdso2c(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 3 {
		return nil, &ParseError{Command: command, Reason: "expected vdso2c, raw input, stripped input, output"}
	}
	return []PathStr{positionals[1], positionals[2]}, nil
}

func parseMkpiggy(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(cutAt(command, ">"))
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected mkpiggy, input"}
	}
	return []PathStr{positionals[1]}, nil
}

func parseRelocs(command string) ([]PathStr, error) {
	if !strings.Contains(command, ">") {
		return nil, nil
	}
	parts, err := rawSplit(cutAt(command, ">"))
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return []PathStr{parts[len(parts)-1]}, nil
}

func parseMkElfconfig(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 3 {
		return nil, &ParseError{Command: command, Reason: "expected mk_elfconfig, '<', input, '>', output"}
	}
	return []PathStr{positionals[2]}, nil
}

func parseToolsBuild(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, nil
	}
	return positionals[1 : len(positionals)-1], nil
}

func parseExtractCert(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	if len(parts) < 2 || parts[1] == "" {
		return nil, nil
	}
	return []PathStr{parts[1]}, nil
}

func parseDtc(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	var wnoFlags []string
	for _, p := range parts {
		if strings.HasPrefix(p, "-Wno-") {
			wnoFlags = append(wnoFlags, p)
		}
	}
	positionals, err := positionalsOnly(command, wnoFlags)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected dtc, input"}
	}
	return []PathStr{positionals[1]}, nil
}

func parsePnmToLogo(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return []PathStr{parts[len(parts)-1]}, nil
}

func parseRelacheck(command string) ([]PathStr, error) {
	positionals, err := TokenizePositionalsOnly(command)
	if err != nil {
		return nil, err
	}
	if len(positionals) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected relacheck, input, log reference"}
	}
	return []PathStr{positionals[1]}, nil
}

func parseMkregtable(command string) ([]PathStr, error) {
	parts := strings.Split(command, " ")
	if len(parts) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected a second whitespace-separated argument"}
	}
	return []PathStr{parts[1]}, nil
}

func parseGenHeaderPy(command string) ([]PathStr, error) {
	parts, err := rawSplit(command)
	if err != nil {
		return nil, err
	}
	for i, p := range parts {
		if p == "--xml" && i+1 < len(parts) {
			return []PathStr{parts[i+1]}, nil
		}
	}
	return nil, &ParseError{Command: command, Reason: "missing --xml argument"}
}

// --- compound groups: ( … ) >file and { … } >file -------------------------

var compoundBodyPattern = regexp.MustCompile(`(?s)^\s*[({](.*)[)}]\s*>`)

type compoundEntry struct {
	pattern *regexp.Regexp
	parse   ParserFunc
}

// compoundInnerRegistry is a restricted registry: only the handful of
// tools that legitimately appear inside a compound `( … ) >file` group
// are recognized here (spec §4.3).
var compoundInnerRegistry = []compoundEntry{
	{regexp.MustCompile(`dd\b`), parseDd},
	{regexp.MustCompile(`cat.*?\|`), func(c string) ([]PathStr, error) { return parseCatCommand(cutAt(c, "|")) }},
	{regexp.MustCompile(`cat\b[^|>]*$`), parseCatCommand},
	{regexp.MustCompile(`echo\b`), parseNoInputs},
	{regexp.MustCompile(`\S+=`), parseNoInputs},
	{regexp.MustCompile(`printf\b`), parseNoInputs},
	{regexp.MustCompile(`sed\b`), parseSedCommand},
	{regexp.MustCompile(`(.*/)?scripts/bin2c\s*<`), parseBin2c},
	{regexp.MustCompile(`^:$`), parseNoInputs},
}

func parseBin2c(command string) ([]PathStr, error) {
	parts := strings.SplitN(command, "<", 2)
	if len(parts) < 2 {
		return nil, &ParseError{Command: command, Reason: "expected a '<' redirect"}
	}
	input := strings.TrimSpace(parts[1])
	if input == "/dev/null" {
		return nil, nil
	}
	return []PathStr{input}, nil
}

func parseCompoundCommand(command string) ([]PathStr, error) {
	m := compoundBodyPattern.FindStringSubmatch(command)
	if m == nil {
		return nil, &ParseError{Command: command, Reason: "no inner commands found for compound command"}
	}

	var inputs []PathStr
	for _, entry := range SplitCommands(m[1]) {
		switch e := entry.(type) {
		case IfBlock:
			diag.Default.Error("skip parsing inner command of compound command because IfBlock is not supported: if %s; then %s; fi", e.Condition, e.ThenStatement)
		case PlainCommand:
			inner := string(e)
			var matched *compoundEntry
			for i := range compoundInnerRegistry {
				if compoundInnerRegistry[i].pattern.MatchString(inner) {
					matched = &compoundInnerRegistry[i]
					break
				}
			}
			if matched == nil {
				diag.Default.Error("skip parsing inner command %q of compound command: no matching parser found", inner)
				continue
			}
			ins, err := matched.parse(inner)
			if err != nil {
				diag.Default.Error("skip parsing inner command %q of compound command: %s", inner, err.Error())
				continue
			}
			inputs = append(inputs, ins...)
		}
	}
	return inputs, nil
}
