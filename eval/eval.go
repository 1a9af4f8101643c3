// Package eval implements the small-step, call-by-value operational
// semantics of fullsimple (spec.md §4.G): IsValue, an at-most-one-step
// Step over a mutable store.Store, a step-budgeted Eval driver (OQ-3), and
// the final decimal rendering of numeric values.
package eval

import (
	"strconv"

	"github.com/mistlang/fullsimple/ast"
	"github.com/mistlang/fullsimple/store"
)

// IsValue reports whether t is a value: no further Step applies to it.
// Numeric values are chains of Succ over Zero; a Record is a value only
// once every field is (spec.md §4.G).
func IsValue(t ast.Term) bool {
	switch t := ast.Unwrap(t).(type) {
	case ast.True, ast.False, ast.Zero, ast.UnitVal, ast.Lambda, ast.StoreLocation:
		return true
	case ast.Succ:
		return IsValue(t.Arg)
	case ast.Record:
		for _, f := range t.Fields {
			if !IsValue(f.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Step performs at-most one small-step reduction of t, threading the
// mutable store for ref/deref/assign. It returns (t, false) when t is
// already a value or otherwise stuck (spec.md §4.G: congruence rules
// reduce the leftmost non-value subterm; a stuck non-value term, such as
// applying a non-function, simply does not step further).
func Step(t ast.Term, s *store.Store) (ast.Term, bool) {
	switch term := ast.Unwrap(t).(type) {
	case ast.If:
		switch ast.Unwrap(term.Cond).(type) {
		case ast.True:
			return term.Then, true
		case ast.False:
			return term.Else, true
		}
		if cond2, ok := Step(term.Cond, s); ok {
			return ast.NewIf(term.Span(), cond2, term.Then, term.Else), true
		}
		return t, false

	case ast.Succ:
		if IsValue(term.Arg) {
			return t, false
		}
		if arg2, ok := Step(term.Arg, s); ok {
			return ast.NewSucc(term.Span(), arg2), true
		}
		return t, false

	case ast.Pred:
		switch arg := ast.Unwrap(term.Arg).(type) {
		case ast.Zero:
			return ast.NewZero(term.Span()), true
		case ast.Succ:
			if IsValue(arg.Arg) {
				return arg.Arg, true
			}
		}
		if arg2, ok := Step(term.Arg, s); ok {
			return ast.NewPred(term.Span(), arg2), true
		}
		return t, false

	case ast.IsZero:
		switch arg := ast.Unwrap(term.Arg).(type) {
		case ast.Zero:
			return ast.NewTrue(term.Span()), true
		case ast.Succ:
			if IsValue(arg.Arg) {
				return ast.NewFalse(term.Span()), true
			}
		}
		if arg2, ok := Step(term.Arg, s); ok {
			return ast.NewIsZero(term.Span(), arg2), true
		}
		return t, false

	case ast.Application:
		if !IsValue(term.Fun) {
			fn2, ok := Step(term.Fun, s)
			if !ok {
				return t, false
			}
			return ast.NewApplication(term.Span(), fn2, term.Arg), true
		}
		if !IsValue(term.Arg) {
			arg2, ok := Step(term.Arg, s)
			if !ok {
				return t, false
			}
			return ast.NewApplication(term.Span(), term.Fun, arg2), true
		}
		if lam, ok := ast.Unwrap(term.Fun).(ast.Lambda); ok {
			return ast.SubstTop(term.Arg, lam.Body), true
		}
		return t, false

	case ast.Record:
		for i, f := range term.Fields {
			if IsValue(f.Value) {
				continue
			}
			v2, ok := Step(f.Value, s)
			if !ok {
				return t, false
			}
			fields := append([]ast.RecordField(nil), term.Fields...)
			fields[i] = ast.RecordField{Label: f.Label, Value: v2}
			return ast.NewRecord(term.Span(), fields), true
		}
		return t, false

	case ast.Projection:
		if !IsValue(term.Rec) {
			rec2, ok := Step(term.Rec, s)
			if !ok {
				return t, false
			}
			return ast.NewProjection(term.Span(), rec2, term.Label), true
		}
		if rec, ok := ast.Unwrap(term.Rec).(ast.Record); ok {
			if v, ok := rec.Lookup(term.Label); ok {
				return v, true
			}
		}
		return t, false

	case ast.Let:
		if !IsValue(term.Bound) {
			bound2, ok := Step(term.Bound, s)
			if !ok {
				return t, false
			}
			return ast.NewLet(term.Span(), term.Name, bound2, term.Body), true
		}
		return ast.SubstTop(term.Bound, term.Body), true

	case ast.Ref:
		if !IsValue(term.Arg) {
			arg2, ok := Step(term.Arg, s)
			if !ok {
				return t, false
			}
			return ast.NewRef(term.Span(), arg2), true
		}
		loc := s.Alloc(term.Arg)
		return ast.NewStoreLocation(loc), true

	case ast.Deref:
		if !IsValue(term.Arg) {
			arg2, ok := Step(term.Arg, s)
			if !ok {
				return t, false
			}
			return ast.NewDeref(term.Span(), arg2), true
		}
		if loc, ok := ast.Unwrap(term.Arg).(ast.StoreLocation); ok {
			return s.Get(loc.N), true
		}
		return t, false

	case ast.Assign:
		if !IsValue(term.Lhs) {
			lhs2, ok := Step(term.Lhs, s)
			if !ok {
				return t, false
			}
			return ast.NewAssign(term.Span(), lhs2, term.Rhs), true
		}
		if !IsValue(term.Rhs) {
			rhs2, ok := Step(term.Rhs, s)
			if !ok {
				return t, false
			}
			return ast.NewAssign(term.Span(), term.Lhs, rhs2), true
		}
		if loc, ok := ast.Unwrap(term.Lhs).(ast.StoreLocation); ok {
			s.Set(loc.N, term.Rhs)
			return ast.NewUnit(term.Span()), true
		}
		return t, false

	case ast.Sequence:
		if !IsValue(term.Fst) {
			fst2, ok := Step(term.Fst, s)
			if !ok {
				return t, false
			}
			return ast.NewSequence(term.Span(), fst2, term.Snd), true
		}
		return term.Snd, true

	case ast.Fix:
		if !IsValue(term.Arg) {
			arg2, ok := Step(term.Arg, s)
			if !ok {
				return t, false
			}
			return ast.NewFix(term.Span(), arg2), true
		}
		if lam, ok := ast.Unwrap(term.Arg).(ast.Lambda); ok {
			return ast.SubstTop(ast.NewFix(term.Span(), term.Arg), lam.Body), true
		}
		return t, false

	default:
		return t, false
	}
}

// Eval drives Step to completion, or until maxSteps rewrites have been
// applied (0 means unbounded). The returned bool reports whether the
// budget was exhausted before reaching a value (OQ-3).
func Eval(t ast.Term, s *store.Store, maxSteps int) (ast.Term, bool) {
	steps := 0
	for {
		if maxSteps > 0 && steps >= maxSteps {
			return t, !IsValue(t)
		}
		next, ok := Step(t, s)
		if !ok {
			return t, false
		}
		t = next
		steps++
	}
}

// Render pretty-prints a term, rendering numeral value chains (Succ over
// Zero) in decimal rather than as nested "succ" keywords (spec.md §4.G).
// Non-numeral terms fall back to ast.Term.Render.
func Render(t ast.Term) string {
	if n, ok := asNumeral(t); ok {
		return strconv.Itoa(n)
	}
	return t.Render()
}

func asNumeral(t ast.Term) (int, bool) {
	switch v := ast.Unwrap(t).(type) {
	case ast.Zero:
		return 0, true
	case ast.Succ:
		n, ok := asNumeral(v.Arg)
		if !ok {
			return 0, false
		}
		return n + 1, true
	default:
		return 0, false
	}
}
