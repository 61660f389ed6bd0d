package env

import "testing"

func TestLookupFromMap(t *testing.T) {
	e := New(map[string]string{"SRCARCH": "x86"})
	v, ok := e.SRCARCH()
	if !ok || v != "x86" {
		t.Fatalf("SRCARCH() = (%q, %v), want (\"x86\", true)", v, ok)
	}
	if _, ok := e.ARCH(); ok {
		t.Fatalf("ARCH() ok = true, want false for unset variable")
	}
}

func TestLookupNilEnvironment(t *testing.T) {
	var e *Environment
	if _, ok := e.Lookup("SRCARCH"); ok {
		t.Fatalf("Lookup on nil Environment ok = true, want false")
	}
}
