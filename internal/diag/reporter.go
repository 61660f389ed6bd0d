package diag

import (
	"fmt"
	"runtime"

	log "github.com/golang/glog"
)

// Severity tags a diagnostic recorded by a Reporter.
type Severity int

const (
	// Warning indicates a recoverable condition that does not affect the
	// run's exit status.
	Warning Severity = iota
	// Error indicates a condition that fails the run unless overridden by
	// a write-output-on-error policy at the call site (spec §4.9/§7).
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// entry is one template's accumulated occurrences, in the order they were
// reported.
type entry struct {
	severity Severity
	messages []string
}

// Reporter is a deduplicating, severity-tagged diagnostic log.
//
// Diagnostics are identified by their *template* (the literal format
// string passed to Error/Warning), not by the formatted message: the
// first occurrence of a template is emitted immediately, later
// occurrences of the same template are only counted until Summarize is
// called. This mirrors the teacher's clog call-site discipline and the
// MessageLogger class in the original Python tool's sbom_logging.py.
//
// NewReporter creates an isolated Reporter. The cmdgraph core and the CLI
// subcommands do not take a Reporter as a parameter: they all report
// through the package-scoped Default instance.
type Reporter struct {
	order   []string
	entries map[string]*entry
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{entries: make(map[string]*entry)}
}

// Default is the process-wide Reporter used by callers that do not need
// an isolated instance, matching the Python tool's module-level
// singleton (sbom_logging.init() at import time).
var Default = NewReporter()

// Error records an error-severity diagnostic. template is matched
// verbatim across calls to dedupe; args are applied with fmt.Sprintf
// for the emitted message. The caller's file, line, and function are
// attached automatically, matching spec §4.9 and
// original_source/sbom/sbom/errors.py's inspect.getframeinfo behavior.
func (r *Reporter) Error(template string, args ...any) {
	msg := fmt.Sprintf(template, args...)
	if file, line, fn, ok := callerInfo(2); ok {
		msg = fmt.Sprintf("%s:%d: in %s: %s", file, line, fn, msg)
	}
	r.record(Error, template, msg)
}

// Warning records a warning-severity diagnostic. Unlike Error, no caller
// context is attached, matching the asymmetry between warning() and
// error() in the original tool's sbom_logging.py.
func (r *Reporter) Warning(template string, args ...any) {
	msg := fmt.Sprintf(template, args...)
	r.record(Warning, template, msg)
}

func (r *Reporter) record(sev Severity, template, msg string) {
	e, ok := r.entries[template]
	if !ok {
		e = &entry{severity: sev}
		r.entries[template] = e
		r.order = append(r.order, template)
		emit(sev, msg)
	}
	e.messages = append(e.messages, msg)
}

func emit(sev Severity, msg string) {
	if sev == Error {
		log.Error(msg)
	} else {
		log.Warning(msg)
	}
}

// Failed reports whether any error-severity diagnostic was recorded.
// Exit status is a failure iff Failed returns true, per spec §4.9/§7,
// unless the caller's write-output-on-error policy overrides it.
func (r *Reporter) Failed() bool {
	for _, template := range r.order {
		if r.entries[template].severity == Error {
			return true
		}
	}
	return false
}

// Counts returns the number of distinct error and warning templates
// recorded.
func (r *Reporter) Counts() (errors, warnings int) {
	for _, template := range r.order {
		if r.entries[template].severity == Error {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

// Summarize flushes a final summary: the first threshold occurrences of
// each template are (re-)emitted, the remainder of that template's
// occurrences collapse into a single "… (N more instances)" line, per
// spec §4.9. threshold <= 0 uses the spec's default of 3.
func (r *Reporter) Summarize(threshold int) {
	if threshold <= 0 {
		threshold = 3
	}
	for _, template := range r.order {
		e := r.entries[template]
		// The first occurrence was already emitted by record(); only
		// summarize the rest here, matching flush_summary's behavior of
		// re-printing up to `threshold` instances before collapsing.
		for i := 1; i < len(e.messages) && i < threshold; i++ {
			emit(e.severity, e.messages[i])
		}
		if remaining := len(e.messages) - threshold; remaining > 0 {
			noun := "instances"
			if remaining == 1 {
				noun = "instance"
			}
			emit(e.severity, fmt.Sprintf("… (%d more %s of this %s)", remaining, noun, e.severity))
		}
	}
}

// Reset clears all recorded diagnostics. Primarily useful in tests that
// share the Default reporter.
func (r *Reporter) Reset() {
	r.order = nil
	r.entries = make(map[string]*entry)
}

func callerInfo(skip int) (file string, line int, function string, ok bool) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", 0, "", false
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return file, line, "", true
	}
	return file, line, fn.Name(), true
}
