package check_test

import (
	"testing"

	"github.com/mistlang/fullsimple/ast"
	. "github.com/mistlang/fullsimple/check"
	"github.com/mistlang/fullsimple/lexer"
	"github.com/mistlang/fullsimple/store"
	"github.com/mistlang/fullsimple/types"
)

var noSpan lexer.Span

func typeOf(t *testing.T, term ast.Term) types.Type {
	t.Helper()
	return TypeOf(NewContext(), nil, term)
}

func TestBaseLiterals(t *testing.T) {
	cases := []struct {
		term ast.Term
		want types.Type
	}{
		{ast.NewTrue(noSpan), types.Bool{}},
		{ast.NewFalse(noSpan), types.Bool{}},
		{ast.NewZero(noSpan), types.Nat{}},
		{ast.NewUnit(noSpan), types.Unit{}},
	}
	for _, c := range cases {
		if got := typeOf(t, c.term); !got.Equal(c.want) {
			t.Errorf("TypeOf(%s) = %s, want %s", c.term.Render(), got, c.want)
		}
	}
}

func TestArithmeticOperators(t *testing.T) {
	succ0 := ast.NewSucc(noSpan, ast.NewZero(noSpan))
	if got := typeOf(t, succ0); !got.Equal(types.Nat{}) {
		t.Errorf("succ 0 : %s, want Nat", got)
	}
	pred0 := ast.NewPred(noSpan, ast.NewZero(noSpan))
	if got := typeOf(t, pred0); !got.Equal(types.Nat{}) {
		t.Errorf("pred 0 : %s, want Nat", got)
	}
	isZero := ast.NewIsZero(noSpan, ast.NewZero(noSpan))
	if got := typeOf(t, isZero); !got.Equal(types.Bool{}) {
		t.Errorf("iszero 0 : %s, want Bool", got)
	}
	// pred iszero 0 is ill typed: iszero 0 : Bool, pred expects Nat.
	predIsZero := ast.NewPred(noSpan, isZero)
	if got := typeOf(t, predIsZero); !types.IsIllTyped(got) {
		t.Errorf("pred iszero 0 : %s, want IllTyped", got)
	}
}

func TestIfRequiresBoolConditionAndJoinsBranches(t *testing.T) {
	cond := ast.NewFalse(noSpan)
	term := ast.NewIf(noSpan, cond, ast.NewTrue(noSpan), ast.NewSucc(noSpan, ast.NewSucc(noSpan, ast.NewZero(noSpan))))
	// if false then true else 2  -- branches Bool and Nat join to Top.
	if got := typeOf(t, term); !got.Equal(types.Top{}) {
		t.Errorf("if with mismatched branches : %s, want Top", got)
	}
	badCond := ast.NewIf(noSpan, ast.NewZero(noSpan), ast.NewTrue(noSpan), ast.NewFalse(noSpan))
	if got := typeOf(t, badCond); !types.IsIllTyped(got) {
		t.Errorf("if with a Nat condition : %s, want IllTyped", got)
	}
}

func TestSelfApplicationIsIllTyped(t *testing.T) {
	// x x, with x free: an unbound variable types as IllTyped, and any use
	// of it as a function or argument propagates that.
	x := ast.NewVariable(noSpan, "x", -1)
	term := ast.NewApplication(noSpan, x, x)
	if got := typeOf(t, term); !types.IsIllTyped(got) {
		t.Errorf("x x with x free : %s, want IllTyped", got)
	}
}

func TestApplicationOfNonFunctionIsIllTyped(t *testing.T) {
	// true 0 -- true is not a function, so applying it to anything is
	// ill typed regardless of the argument.
	term := ast.NewApplication(noSpan, ast.NewTrue(noSpan), ast.NewZero(noSpan))
	if got := typeOf(t, term); !types.IsIllTyped(got) {
		t.Errorf("applying a Bool as a function : %s, want IllTyped", got)
	}
}

func TestApplicationRespectsSubtyping(t *testing.T) {
	// (l x:Top. x) 0 is well typed: 0 : Nat <: Top.
	f := ast.NewLambda(noSpan, "x", types.Top{}, ast.NewVariable(noSpan, "x", 0))
	term := ast.NewApplication(noSpan, f, ast.NewZero(noSpan))
	if got := typeOf(t, term); !got.Equal(types.Top{}) {
		t.Errorf("(l x:Top. x) 0 : %s, want Top", got)
	}
}

func TestRecordAndProjection(t *testing.T) {
	rec := ast.NewRecord(noSpan, []ast.RecordField{
		{Label: "x", Value: ast.NewZero(noSpan)},
		{Label: "y", Value: ast.NewTrue(noSpan)},
	})
	proj := ast.NewProjection(noSpan, rec, "y")
	if got := typeOf(t, proj); !got.Equal(types.Bool{}) {
		t.Errorf("{x=0,y=true}.y : %s, want Bool", got)
	}
	missing := ast.NewProjection(noSpan, rec, "z")
	if got := typeOf(t, missing); !types.IsIllTyped(got) {
		t.Errorf("projecting a missing field : %s, want IllTyped", got)
	}
}

func TestLetBindsBoundType(t *testing.T) {
	term := ast.NewLet(noSpan, "x", ast.NewZero(noSpan), ast.NewSucc(noSpan, ast.NewVariable(noSpan, "x", 0)))
	if got := typeOf(t, term); !got.Equal(types.Nat{}) {
		t.Errorf("let x = 0 in succ x : %s, want Nat", got)
	}
}

func TestReferencesAndAssignment(t *testing.T) {
	// let x = ref 0 in x := true  -- ill typed: cell holds Nat, RHS is Bool.
	xRef := ast.NewVariable(noSpan, "x", 0)
	badBody := ast.NewAssign(noSpan, xRef, ast.NewTrue(noSpan))
	badTerm := ast.NewLet(noSpan, "x", ast.NewRef(noSpan, ast.NewZero(noSpan)), badBody)
	if got := typeOf(t, badTerm); !types.IsIllTyped(got) {
		t.Errorf("assigning Bool into a Ref Nat : %s, want IllTyped", got)
	}

	goodBody := ast.NewSequence(noSpan,
		ast.NewAssign(noSpan, xRef, ast.NewSucc(noSpan, ast.NewZero(noSpan))),
		ast.NewDeref(noSpan, xRef))
	goodTerm := ast.NewLet(noSpan, "x", ast.NewRef(noSpan, ast.NewZero(noSpan)), goodBody)
	if got := typeOf(t, goodTerm); !got.Equal(types.Nat{}) {
		t.Errorf("counter-style ref/assign/deref : %s, want Nat", got)
	}
}

func TestDerefOfNonRefIsIllTyped(t *testing.T) {
	term := ast.NewDeref(noSpan, ast.NewZero(noSpan))
	if got := typeOf(t, term); !types.IsIllTyped(got) {
		t.Errorf("!0 : %s, want IllTyped", got)
	}
}

func TestFixRequiresMatchingDomainAndCodomain(t *testing.T) {
	// fix (l f:Nat->Nat. f) : Nat->Nat.
	f := ast.NewLambda(noSpan, "f", types.Function{Dom: types.Nat{}, Cod: types.Nat{}}, ast.NewVariable(noSpan, "f", 0))
	term := ast.NewFix(noSpan, f)
	if got := typeOf(t, term); !got.Equal(types.Function{Dom: types.Nat{}, Cod: types.Nat{}}) {
		t.Errorf("fix (l f:Nat->Nat. f) : %s, want Nat->Nat", got)
	}
}

func TestStoreLocationConsultsTyping(t *testing.T) {
	loc := ast.NewStoreLocation(0)
	if got := typeOf(t, loc); !types.IsIllTyped(got) {
		t.Errorf("a StoreLocation with no typing recorded : %s, want IllTyped", got)
	}
	st := store.NewTyping()
	st.Record(0, types.Nat{})
	got := TypeOf(NewContext(), st, loc)
	want := types.Ref{Inner: types.Nat{}}
	if !got.Equal(want) {
		t.Errorf("StoreLocation 0 with recorded Nat typing : %s, want %s", got, want)
	}
}

func TestParenthesizedTransparentToTypeOf(t *testing.T) {
	inner := ast.NewSucc(noSpan, ast.NewZero(noSpan))
	wrapped := ast.NewParenthesized(noSpan, inner)
	if got := typeOf(t, wrapped); !got.Equal(types.Nat{}) {
		t.Errorf("(succ 0) : %s, want Nat", got)
	}
}
