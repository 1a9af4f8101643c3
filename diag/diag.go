// Package diag holds the diagnostic types shared by the parser and driver
// surface: a Diagnostic carries a message and a source Span, and
// SyntaxError is the fatal error the parser returns (spec.md §7).
package diag

import (
	"fmt"

	"github.com/mistlang/fullsimple/lexer"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one reported issue anchored at a source Span.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     lexer.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// SyntaxError is returned by the parser for any grammar violation
// (unbalanced parens, dangling operator, missing then/else/in, free
// identifier longer than one character, ...). It is fatal for that input:
// no partial term is produced (spec.md §7).
type SyntaxError struct {
	Message string
	Span    lexer.Span
	Token   fmt.Stringer
}

func (e *SyntaxError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("%s: syntax error: %s (got %s)", e.Span, e.Message, e.Token)
	}
	return fmt.Sprintf("%s: syntax error: %s", e.Span, e.Message)
}
