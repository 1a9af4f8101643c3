package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunInlineExpression(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-e", "succ succ 0"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if got := stdout.String(); got != "2 : Nat\n" {
		t.Errorf("stdout = %q, want %q", got, "2 : Nat\n")
	}
}

func TestRunSyntaxErrorExitsNonZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-e", "if true then true"}, strings.NewReader(""), &stdout, &stderr)
	if code == 0 {
		t.Fatalf("expected a non-zero exit code for a syntax error")
	}
	if stderr.Len() == 0 {
		t.Errorf("expected a diagnostic on stderr")
	}
}

func TestRunDebugDumpsParsedTerm(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-debug", "-e", "true"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "True") {
		t.Errorf("expected the litter dump on stderr to mention the True term, got %q", stderr.String())
	}
}

func TestRunWithNoInputPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(""), &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
