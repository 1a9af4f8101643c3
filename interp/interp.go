// Package interp wires the lexer, parser, checker, and evaluator into
// fullsimple's single public surface (spec.md §6): parse a source string,
// evaluate it to a value, and report both the rendered result and its
// static type.
package interp

import (
	"github.com/mistlang/fullsimple/check"
	"github.com/mistlang/fullsimple/eval"
	"github.com/mistlang/fullsimple/parser"
	"github.com/mistlang/fullsimple/store"
	"github.com/mistlang/fullsimple/types"
)

// DefaultMaxSteps bounds evaluation so a diverging test term or an
// accidental Omega combinator in a caller's input can't hang the process
// (OQ-3). Interpret uses it; callers that want to single-step by hand
// should use the parser/check/eval packages directly instead.
const DefaultMaxSteps = 10000

// Interpret parses, type-checks, and evaluates source, returning the
// rendered result and its static type. A syntax error aborts before any
// type or value is produced. Typing happens once, on the freshly parsed
// term — type preservation means evaluation cannot change it — so an
// ill-typed term still evaluates (spec.md §6 treats types.IllTyped as
// informational, not fatal) and is reported with that type alongside
// whatever the evaluator produces. A term whose evaluation exhausts
// DefaultMaxSteps is reported as an error, since no result was reached.
func Interpret(source string) (rendered string, typ types.Type, err error) {
	term, err := parser.Parse(source)
	if err != nil {
		return "", nil, err
	}

	typ = check.TypeOf(check.NewContext(), nil, term)

	s := store.New()
	result, exhausted := eval.Eval(term, s, DefaultMaxSteps)
	if exhausted {
		return "", typ, &EvalTimeoutError{Source: source}
	}

	return eval.Render(result), typ, nil
}

// EvalTimeoutError reports that evaluation did not converge to a value
// within DefaultMaxSteps.
type EvalTimeoutError struct {
	Source string
}

func (e *EvalTimeoutError) Error() string {
	return "evaluation did not converge within the step budget"
}
