// Package subtype implements the structural subtyping relation "<="
// (spec.md §4.E) over types.Type, plus the join the type checker needs for
// "if" and the meet that join uses on function domains.
package subtype

import (
	"github.com/mistlang/fullsimple/types"
)

// Sub reports whether S is a structural subtype of T (spec.md §4.E):
// reflexivity, Top as the universal supertype, contravariant/covariant
// function subtyping, record width/permutation/depth subtyping, and an
// invariant Ref.
func Sub(s, t types.Type) bool {
	if _, ok := t.(types.Top); ok {
		return true
	}
	if s.Equal(t) {
		return true
	}
	switch s := s.(type) {
	case types.Function:
		t, ok := t.(types.Function)
		if !ok {
			return false
		}
		// Contravariant in the domain, covariant in the codomain.
		return Sub(t.Dom, s.Dom) && Sub(s.Cod, t.Cod)
	case types.Record:
		t, ok := t.(types.Record)
		if !ok {
			return false
		}
		// Width + permutation + depth: every field T names must be present
		// in S (any label, any order) with a subtype at that label.
		for _, tf := range t.Fields {
			sf, ok := s.Lookup(tf.Label)
			if !ok || !Sub(sf, tf.Type) {
				return false
			}
		}
		return true
	case types.Ref:
		t, ok := t.(types.Ref)
		if !ok {
			return false
		}
		// Ref is invariant: neither covariant nor contravariant makes
		// sense once a cell can be both read and written.
		return s.Inner.Equal(t.Inner)
	default:
		return false
	}
}

// Join returns the least common supertype of S and T (spec.md §4.E), used
// when an "if" branches to two different types.
func Join(s, t types.Type) types.Type {
	if s.Equal(t) {
		return s
	}
	if Sub(s, t) {
		return t
	}
	if Sub(t, s) {
		return s
	}
	switch s := s.(type) {
	case types.Function:
		t, ok := t.(types.Function)
		if !ok {
			return types.Top{}
		}
		// The domain must narrow (meet), the codomain widens (join), so the
		// joined function remains applicable to arguments valid for both.
		dom := Meet(s.Dom, t.Dom)
		if types.IsIllTyped(dom) {
			return types.Top{}
		}
		return types.Function{Dom: dom, Cod: Join(s.Cod, t.Cod)}
	case types.Record:
		t, ok := t.(types.Record)
		if !ok {
			return types.Top{}
		}
		var fields []types.Field
		for _, sf := range s.Fields {
			if tf, ok := t.Lookup(sf.Label); ok {
				fields = append(fields, types.Field{Label: sf.Label, Type: Join(sf.Type, tf)})
			}
		}
		return types.Record{Fields: fields}
	case types.Ref:
		// Ref's invariance means two differently-typed refs share no
		// supertype narrower than Top.
		return types.Top{}
	default:
		return types.Top{}
	}
}

// Meet returns the greatest common subtype of S and T (spec.md §4.E), used
// to join function domains contravariantly inside Join. Meet may fail to
// exist (e.g. two records with a common label at incompatible types); this
// implementation returns types.IllTyped in that case, which Join treats
// as "fall back to Top."
func Meet(s, t types.Type) types.Type {
	if s.Equal(t) {
		return s
	}
	if Sub(s, t) {
		return s
	}
	if Sub(t, s) {
		return t
	}
	switch s := s.(type) {
	case types.Function:
		t, ok := t.(types.Function)
		if !ok {
			return types.IllTyped{}
		}
		cod := Meet(s.Cod, t.Cod)
		if types.IsIllTyped(cod) {
			return types.IllTyped{}
		}
		return types.Function{Dom: Join(s.Dom, t.Dom), Cod: cod}
	case types.Record:
		t, ok := t.(types.Record)
		if !ok {
			return types.IllTyped{}
		}
		// Width goes the other way for meet: the result carries every
		// label from either side, met where both define it.
		fields := append([]types.Field(nil), s.Fields...)
		for _, tf := range t.Fields {
			if _, ok := s.Lookup(tf.Label); !ok {
				fields = append(fields, tf)
			}
		}
		for i, f := range fields {
			if tf, ok := t.Lookup(f.Label); ok {
				if sf, ok := s.Lookup(f.Label); ok {
					m := Meet(sf, tf)
					if types.IsIllTyped(m) {
						return types.IllTyped{}
					}
					fields[i] = types.Field{Label: f.Label, Type: m}
				}
			}
		}
		return types.Record{Fields: fields}
	default:
		return types.IllTyped{}
	}
}
