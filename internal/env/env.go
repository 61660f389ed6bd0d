// Package env provides accessors for the handful of kernel-build
// environment variables the Command-Graph Engine's core consumes
// (spec §3.14/§6), grounded on
// original_source/sbom/lib/sbom/environment.py's Environment class.
package env

import "os"

// Environment is the set of kernel-build variables the engine is aware
// of. A cmdgraph.BuildConfig carries one so tests can inject a fixed environment
// instead of depending on process-global state.
type Environment struct {
	vars map[string]string
}

// FromOS builds an Environment by reading the named variables from the
// process environment. Variables that are unset are simply absent from
// Lookup rather than erroring — missing an optional variable is reported
// by the caller that actually needed it (e.g. the hardcoded-dependency
// table's {arch} template, spec §4.6/§7).
func FromOS(names ...string) *Environment {
	e := &Environment{vars: make(map[string]string, len(names))}
	for _, name := range names {
		if v, ok := os.LookupEnv(name); ok {
			e.vars[name] = v
		}
	}
	return e
}

// New builds an Environment from an explicit map, for tests and library
// callers that do not want to touch process environment variables.
func New(vars map[string]string) *Environment {
	e := &Environment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// Lookup returns the named variable's value and whether it was set.
func (e *Environment) Lookup(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.vars[name]
	return v, ok
}

// SRCARCH returns the SRCARCH environment variable used to expand the
// {arch} placeholder in the hardcoded-dependency table (spec §4.6).
func (e *Environment) SRCARCH() (string, bool) {
	return e.Lookup("SRCARCH")
}

// ARCH returns the ARCH environment variable.
func (e *Environment) ARCH() (string, bool) {
	return e.Lookup("ARCH")
}
