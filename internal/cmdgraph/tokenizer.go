package cmdgraph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// Token is the sum type a single command line tokenizes into: either a
// Positional or an Option (spec §4.1).
type Token interface {
	isToken()
}

// Positional is a bare (non-flag) command-line argument.
type Positional struct {
	Value string
}

func (Positional) isToken() {}

// Option is a flag, with or without a value, e.g. "--opt val",
// "--opt=val", or a bare "--flag".
type Option struct {
	Name     string
	Value    string // meaningful only when HasValue is true
	HasValue bool
}

func (Option) isToken() {}

// subcommandPattern protects $$(...) blocks from the shell splitter by
// wrapping them in double quotes before tokenizing, exactly as
// original_source/.../savedcmd_parser.py's _SUBCOMMAND_PATTERN does.
var subcommandPattern = regexp.MustCompile(`\$\$\(([^()]*)\)`)

// TokenizeError reports that a command could not be tokenized.
type TokenizeError struct {
	Command string
	Reason  string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("cannot tokenize command %q: %s", e.Command, e.Reason)
}

// Tokenize splits a single shell command into Positionals and Options,
// per spec §4.1. flagOptions names options that are known to take no
// value (e.g. "-S", "-w") even when a non-flag-looking token follows
// them.
func Tokenize(command string, flagOptions []string) ([]Token, error) {
	protected := subcommandPattern.ReplaceAllStringFunc(command, func(m string) string {
		inner := subcommandPattern.FindStringSubmatch(m)[1]
		return `"$$(` + inner + `)"`
	})

	words, err := shlex.Split(protected)
	if err != nil {
		return nil, &TokenizeError{Command: command, Reason: err.Error()}
	}

	isFlagOption := make(map[string]bool, len(flagOptions))
	for _, f := range flagOptions {
		isFlagOption[f] = true
	}

	var tokens []Token
	for i := 0; i < len(words); i++ {
		word := words[i]

		if !strings.HasPrefix(word, "-") {
			tokens = append(tokens, Positional{Value: word})
			continue
		}

		nextStartsWithDash := i+1 < len(words) && strings.HasPrefix(words[i+1], "-")
		if nextStartsWithDash || isFlagOption[word] {
			tokens = append(tokens, Option{Name: word})
			continue
		}

		if eq := strings.IndexByte(word, '='); eq >= 0 {
			tokens = append(tokens, Option{Name: word[:eq], Value: word[eq+1:], HasValue: true})
			continue
		}

		if i+1 < len(words) && !strings.HasPrefix(words[i+1], "-") {
			tokens = append(tokens, Option{Name: word, Value: words[i+1], HasValue: true})
			i++
			continue
		}

		return nil, &TokenizeError{Command: command, Reason: fmt.Sprintf("unrecognized token: %s", word)}
	}
	return tokens, nil
}

// TokenizePositionalsOnly tokenizes command and returns only the
// positional values, failing if any option was found. This is the
// convenience variant spec §4.1 describes for parsers whose tool never
// takes flags (ar, tools/build, …).
func TokenizePositionalsOnly(command string) ([]string, error) {
	tokens, err := Tokenize(command, nil)
	if err != nil {
		return nil, err
	}
	positionals := make([]string, 0, len(tokens))
	for _, t := range tokens {
		p, ok := t.(Positional)
		if !ok {
			return nil, &TokenizeError{Command: command, Reason: "expected positional arguments only, found an option"}
		}
		positionals = append(positionals, p.Value)
	}
	return positionals, nil
}
