package ast

// Substitute replaces every free occurrence of the variable with index j in
// t by s, shifting s as it descends under binders (spec.md §4.C). It
// recurses into every term variant via a single type switch, the way the
// teacher's checker walks ast.Node with a switch in infer().
func Substitute(j int, s, t Term) Term {
	switch t := t.(type) {
	case True, False, Zero, UnitVal, StoreLocation:
		return t
	case Variable:
		if t.Idx == j {
			return s
		}
		return t
	case Succ:
		return Succ{t.span, Substitute(j, s, t.Arg)}
	case Pred:
		return Pred{t.span, Substitute(j, s, t.Arg)}
	case IsZero:
		return IsZero{t.span, Substitute(j, s, t.Arg)}
	case If:
		return If{t.span, Substitute(j, s, t.Cond), Substitute(j, s, t.Then), Substitute(j, s, t.Else)}
	case Lambda:
		return Lambda{t.span, t.Name, t.DomType, Substitute(j+1, s.Shift(1, 0), t.Body)}
	case Application:
		return Application{t.span, Substitute(j, s, t.Fun), Substitute(j, s, t.Arg)}
	case Record:
		fields := make([]RecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordField{f.Label, Substitute(j, s, f.Value)}
		}
		return Record{t.span, fields}
	case Projection:
		return Projection{t.span, Substitute(j, s, t.Rec), t.Label}
	case Let:
		return Let{t.span, t.Name, Substitute(j, s, t.Bound), Substitute(j+1, s.Shift(1, 0), t.Body)}
	case Ref:
		return Ref{t.span, Substitute(j, s, t.Arg)}
	case Deref:
		return Deref{t.span, Substitute(j, s, t.Arg)}
	case Assign:
		return Assign{t.span, Substitute(j, s, t.Lhs), Substitute(j, s, t.Rhs)}
	case Sequence:
		return Sequence{t.span, Substitute(j, s, t.Fst), Substitute(j, s, t.Snd)}
	case Fix:
		return Fix{t.span, Substitute(j, s, t.Arg)}
	case Parenthesized:
		return Parenthesized{t.span, Substitute(j, s, t.Inner)}
	default:
		panic("ast.Substitute: unhandled term variant")
	}
}

// SubstTop implements top-level substitution: shift s by 1, substitute it
// for index 0 in t, then shift the whole result by -1 (spec.md §4.C). This
// is beta-reduction's substitution step and also drives let/fix unfolding.
func SubstTop(s, t Term) Term {
	return Substitute(0, s.Shift(1, 0), t).Shift(-1, 0)
}
