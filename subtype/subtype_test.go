package subtype_test

import (
	"testing"

	. "github.com/mistlang/fullsimple/subtype"
	"github.com/mistlang/fullsimple/types"
)

func TestSubReflexive(t *testing.T) {
	for _, ty := range []types.Type{
		types.Bool{}, types.Nat{}, types.Unit{}, types.Top{},
		types.Function{Dom: types.Bool{}, Cod: types.Nat{}},
		types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}}},
		types.Ref{Inner: types.Bool{}},
	} {
		if !Sub(ty, ty) {
			t.Errorf("Sub(%s, %s) = false, want true (reflexivity)", ty, ty)
		}
	}
}

func TestSubTopIsSupremum(t *testing.T) {
	for _, ty := range []types.Type{
		types.Bool{}, types.Nat{},
		types.Function{Dom: types.Top{}, Cod: types.Bool{}},
		types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}}},
	} {
		if !Sub(ty, types.Top{}) {
			t.Errorf("Sub(%s, Top) = false, want true", ty)
		}
	}
	if Sub(types.Top{}, types.Bool{}) {
		t.Errorf("Top must not be a subtype of Bool")
	}
}

func TestSubRecordWidth(t *testing.T) {
	wide := types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "y", Type: types.Bool{}}}}
	narrow := types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}}}
	if !Sub(wide, narrow) {
		t.Errorf("a record with extra fields should be a subtype of one with fewer")
	}
	if Sub(narrow, wide) {
		t.Errorf("a record missing a required field must not be a subtype")
	}
}

func TestSubRecordPermutation(t *testing.T) {
	// {b:Nat,a:Bool} <: {a:Bool,b:Nat}: field order does not matter for
	// subtyping even though it does for ast/types Equal (spec.md §8).
	a := types.Record{Fields: []types.Field{{Label: "b", Type: types.Nat{}}, {Label: "a", Type: types.Bool{}}}}
	b := types.Record{Fields: []types.Field{{Label: "a", Type: types.Bool{}}, {Label: "b", Type: types.Nat{}}}}
	if !Sub(a, b) {
		t.Errorf("record subtyping must ignore field order")
	}
	if a.Equal(b) {
		t.Errorf("Equal is positional and should distinguish these two records")
	}
}

func TestSubRecordDepth(t *testing.T) {
	inner := types.Record{Fields: []types.Field{{Label: "x", Type: types.Record{Fields: []types.Field{{Label: "y", Type: types.Nat{}}, {Label: "z", Type: types.Bool{}}}}}}}
	outer := types.Record{Fields: []types.Field{{Label: "x", Type: types.Record{Fields: []types.Field{{Label: "y", Type: types.Nat{}}}}}}}
	if !Sub(inner, outer) {
		t.Errorf("nested record fields should subtype covariantly (depth subtyping)")
	}
}

func TestSubFunctionContravariantDomain(t *testing.T) {
	// A function accepting the wider Top can be used where one accepting
	// Bool is expected: Bool -> Bool <: Top -> Bool requires
	// Top <: Bool (false)... the correct direction is:
	// (Top -> Bool) <: (Bool -> Bool), because callers only ever pass Bool,
	// and a function that accepts anything (Top) certainly accepts a Bool.
	wide := types.Function{Dom: types.Top{}, Cod: types.Bool{}}
	narrow := types.Function{Dom: types.Bool{}, Cod: types.Bool{}}
	if !Sub(wide, narrow) {
		t.Errorf("Sub(Top->Bool, Bool->Bool) = false, want true (contravariant domain)")
	}
	if Sub(narrow, wide) {
		t.Errorf("Sub(Bool->Bool, Top->Bool) must be false")
	}
}

func TestSubFunctionCovariantCodomain(t *testing.T) {
	narrowResult := types.Function{Dom: types.Bool{}, Cod: types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "y", Type: types.Bool{}}}}}
	wideResult := types.Function{Dom: types.Bool{}, Cod: types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}}}}
	if !Sub(narrowResult, wideResult) {
		t.Errorf("a function returning more fields should subtype one returning fewer (covariant codomain)")
	}
}

func TestSubRefIsInvariant(t *testing.T) {
	a := types.Ref{Inner: types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "y", Type: types.Bool{}}}}}
	b := types.Ref{Inner: types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}}}}
	if Sub(a, b) || Sub(b, a) {
		t.Errorf("Ref must be invariant even though its Inner types are related by subtyping")
	}
}

func TestJoinRecordKeepsOnlyCommonFields(t *testing.T) {
	// Join(Record({x:Nat,y:Bool}), Record({x:Nat,z:Nat})) = Record({x:Nat})
	a := types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "y", Type: types.Bool{}}}}
	b := types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "z", Type: types.Nat{}}}}
	got := Join(a, b)
	want := types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}}}
	if !got.Equal(want) {
		t.Errorf("Join(%s, %s) = %s, want %s", a, b, got, want)
	}
}

func TestJoinUnrelatedPrimitivesIsTop(t *testing.T) {
	if got := Join(types.Bool{}, types.Nat{}); !got.Equal(types.Top{}) {
		t.Errorf("Join(Bool, Nat) = %s, want Top", got)
	}
}

func TestJoinIsReflexive(t *testing.T) {
	if got := Join(types.Nat{}, types.Nat{}); !got.Equal(types.Nat{}) {
		t.Errorf("Join(Nat, Nat) = %s, want Nat", got)
	}
}

func TestJoinFunctionMeetsUnrelatedDomains(t *testing.T) {
	// Neither domain subtypes the other, so Join falls through to the
	// Function case and computes Meet(Dom1, Dom2) directly: a record Meet
	// unions the fields, since a caller must be able to satisfy both.
	f1 := types.Function{Dom: types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "y", Type: types.Bool{}}}}, Cod: types.Bool{}}
	f2 := types.Function{Dom: types.Record{Fields: []types.Field{{Label: "x", Type: types.Nat{}}, {Label: "z", Type: types.Bool{}}}}, Cod: types.Bool{}}
	got := Join(f1, f2)
	fn, ok := got.(types.Function)
	if !ok {
		t.Fatalf("Join of two Functions should be a Function, got %s", got)
	}
	dom, ok := fn.Dom.(types.Record)
	if !ok {
		t.Fatalf("expected a Record domain from Meet, got %s", fn.Dom)
	}
	for _, label := range []string{"x", "y", "z"} {
		if _, ok := dom.Lookup(label); !ok {
			t.Errorf("joined function's domain should carry field %q from Meet, fields were %v", label, dom.Fields)
		}
	}
}
