// Package ast defines the term AST of fullsimple: the tagged term
// variants, de Bruijn shift/substitute, structural equality, cloning, and
// pretty printing (spec.md §3 Terms, §4.C).
package ast

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/mistlang/fullsimple/lexer"
	"github.com/mistlang/fullsimple/types"
)

// Term is any node of the term AST.
type Term interface {
	// Span is the source range this term was parsed from. Terms built by
	// the evaluator (StoreLocation) or synthesized during substitution may
	// carry a zero Span.
	Span() lexer.Span
	// Equal is structural equality (spec.md §4.C): tags and components are
	// compared recursively, variables by de Bruijn index, records
	// positionally.
	Equal(Term) bool
	// Render pretty-prints the term (spec.md §4.G's rendering rules,
	// reused here for printing well-typed and stuck terms alike).
	Render() string
	// Clone deep-copies the term, preserving variant and Span.
	Clone() Term
	// Shift adds d to every free-variable index (index >= cutoff).
	Shift(d, cutoff int) Term
}

var (
	_ Term = True{}
	_ Term = False{}
	_ Term = Zero{}
	_ Term = UnitVal{}
	_ Term = Succ{}
	_ Term = Pred{}
	_ Term = IsZero{}
	_ Term = If{}
	_ Term = Variable{}
	_ Term = Lambda{}
	_ Term = Application{}
	_ Term = Record{}
	_ Term = Projection{}
	_ Term = Let{}
	_ Term = Ref{}
	_ Term = Deref{}
	_ Term = Assign{}
	_ Term = Sequence{}
	_ Term = Fix{}
	_ Term = StoreLocation{}
	_ Term = Parenthesized{}
)

// --- literal / atomic terms ---

type True struct{ span lexer.Span }

func NewTrue(s lexer.Span) True   { return True{s} }
func (t True) Span() lexer.Span   { return t.span }
func (t True) Equal(o Term) bool  { _, ok := o.(True); return ok }
func (t True) Render() string     { return "true" }
func (t True) Clone() Term        { return t }
func (t True) Shift(d, c int) Term { return t }

type False struct{ span lexer.Span }

func NewFalse(s lexer.Span) False  { return False{s} }
func (t False) Span() lexer.Span   { return t.span }
func (t False) Equal(o Term) bool  { _, ok := o.(False); return ok }
func (t False) Render() string     { return "false" }
func (t False) Clone() Term        { return t }
func (t False) Shift(d, c int) Term { return t }

type Zero struct{ span lexer.Span }

func NewZero(s lexer.Span) Zero    { return Zero{s} }
func (t Zero) Span() lexer.Span    { return t.span }
func (t Zero) Equal(o Term) bool   { _, ok := o.(Zero); return ok }
func (t Zero) Render() string      { return "0" }
func (t Zero) Clone() Term         { return t }
func (t Zero) Shift(d, c int) Term { return t }

// UnitVal is the literal "unit" value, distinct from the type Unit.
type UnitVal struct{ span lexer.Span }

func NewUnit(s lexer.Span) UnitVal  { return UnitVal{s} }
func (t UnitVal) Span() lexer.Span  { return t.span }
func (t UnitVal) Equal(o Term) bool { _, ok := o.(UnitVal); return ok }
func (t UnitVal) Render() string    { return "unit" }
func (t UnitVal) Clone() Term       { return t }
func (t UnitVal) Shift(d, c int) Term { return t }

// --- unary forms ---

type Succ struct {
	span lexer.Span
	Arg  Term
}

func NewSucc(s lexer.Span, arg Term) Succ { return Succ{s, arg} }
func (t Succ) Span() lexer.Span           { return t.span }
func (t Succ) Equal(o Term) bool {
	other, ok := o.(Succ)
	return ok && t.Arg.Equal(other.Arg)
}
func (t Succ) Render() string { return "succ " + t.Arg.Render() }
func (t Succ) Clone() Term    { return Succ{t.span, t.Arg.Clone()} }
func (t Succ) Shift(d, c int) Term {
	return Succ{t.span, t.Arg.Shift(d, c)}
}

type Pred struct {
	span lexer.Span
	Arg  Term
}

func NewPred(s lexer.Span, arg Term) Pred { return Pred{s, arg} }
func (t Pred) Span() lexer.Span           { return t.span }
func (t Pred) Equal(o Term) bool {
	other, ok := o.(Pred)
	return ok && t.Arg.Equal(other.Arg)
}
func (t Pred) Render() string      { return "pred " + t.Arg.Render() }
func (t Pred) Clone() Term         { return Pred{t.span, t.Arg.Clone()} }
func (t Pred) Shift(d, c int) Term { return Pred{t.span, t.Arg.Shift(d, c)} }

type IsZero struct {
	span lexer.Span
	Arg  Term
}

func NewIsZero(s lexer.Span, arg Term) IsZero { return IsZero{s, arg} }
func (t IsZero) Span() lexer.Span             { return t.span }
func (t IsZero) Equal(o Term) bool {
	other, ok := o.(IsZero)
	return ok && t.Arg.Equal(other.Arg)
}
func (t IsZero) Render() string      { return "iszero " + t.Arg.Render() }
func (t IsZero) Clone() Term         { return IsZero{t.span, t.Arg.Clone()} }
func (t IsZero) Shift(d, c int) Term { return IsZero{t.span, t.Arg.Shift(d, c)} }

// --- conditional ---

type If struct {
	span                  lexer.Span
	Cond, Then, Else      Term
}

func NewIf(s lexer.Span, cond, then, els Term) If { return If{s, cond, then, els} }
func (t If) Span() lexer.Span                     { return t.span }
func (t If) Equal(o Term) bool {
	other, ok := o.(If)
	return ok && t.Cond.Equal(other.Cond) && t.Then.Equal(other.Then) && t.Else.Equal(other.Else)
}
func (t If) Render() string {
	return "if " + t.Cond.Render() + " then " + t.Then.Render() + " else " + t.Else.Render()
}
func (t If) Clone() Term { return If{t.span, t.Cond.Clone(), t.Then.Clone(), t.Else.Clone()} }
func (t If) Shift(d, c int) Term {
	return If{t.span, t.Cond.Shift(d, c), t.Then.Shift(d, c), t.Else.Shift(d, c)}
}

// --- variables and binders ---

// Variable is a de Bruijn-indexed reference. Name is retained only for
// printing (spec.md §3).
type Variable struct {
	span lexer.Span
	Name string
	Idx  int
}

func NewVariable(s lexer.Span, name string, idx int) Variable { return Variable{s, name, idx} }
func (t Variable) Span() lexer.Span                           { return t.span }
func (t Variable) Equal(o Term) bool {
	other, ok := o.(Variable)
	return ok && t.Idx == other.Idx
}
func (t Variable) Render() string      { return t.Name }
func (t Variable) Clone() Term         { return t }
func (t Variable) Shift(d, c int) Term {
	if t.Idx >= c {
		return Variable{t.span, t.Name, t.Idx + d}
	}
	return t
}

// Lambda is "l Name:DomType. Body".
type Lambda struct {
	span    lexer.Span
	Name    string
	DomType types.Type
	Body    Term
}

func NewLambda(s lexer.Span, name string, dom types.Type, body Term) Lambda {
	return Lambda{s, name, dom, body}
}
func (t Lambda) Span() lexer.Span { return t.span }
func (t Lambda) Equal(o Term) bool {
	other, ok := o.(Lambda)
	if !ok {
		return false
	}
	return t.DomType.Equal(other.DomType) && t.Body.Equal(other.Body)
}
func (t Lambda) Render() string {
	return "l " + t.Name + ":" + t.DomType.String() + ". " + t.Body.Render()
}
func (t Lambda) Clone() Term { return Lambda{t.span, t.Name, t.DomType, t.Body.Clone()} }
func (t Lambda) Shift(d, c int) Term {
	return Lambda{t.span, t.Name, t.DomType, t.Body.Shift(d, c+1)}
}

// Application is left-associative function application "F A".
type Application struct {
	span     lexer.Span
	Fun, Arg Term
}

func NewApplication(s lexer.Span, fun, arg Term) Application { return Application{s, fun, arg} }
func (t Application) Span() lexer.Span                       { return t.span }
func (t Application) Equal(o Term) bool {
	other, ok := o.(Application)
	return ok && t.Fun.Equal(other.Fun) && t.Arg.Equal(other.Arg)
}
func (t Application) Render() string {
	return renderAtom(t.Fun) + " " + renderAtom(t.Arg)
}
func (t Application) Clone() Term { return Application{t.span, t.Fun.Clone(), t.Arg.Clone()} }
func (t Application) Shift(d, c int) Term {
	return Application{t.span, t.Fun.Shift(d, c), t.Arg.Shift(d, c)}
}

// renderAtom parenthesizes compound subterms of an application the way a
// reader expects juxtaposition to bind: "(l x:Nat. x) y", not "l x:Nat. x y".
func renderAtom(t Term) string {
	switch t.(type) {
	case Lambda, If, Let, Sequence, Assign:
		return "(" + t.Render() + ")"
	default:
		return t.Render()
	}
}

// --- records ---

// RecordField is one labelled field of a Record term.
type RecordField struct {
	Label string
	Value Term
}

// Record is "{l1=t1, ..., ln=tn}"; labels must be unique.
type Record struct {
	span   lexer.Span
	Fields []RecordField
}

func NewRecord(s lexer.Span, fields []RecordField) Record { return Record{s, fields} }
func (t Record) Span() lexer.Span                         { return t.span }
func (t Record) Equal(o Term) bool {
	other, ok := o.(Record)
	if !ok {
		return false
	}
	return slices.EqualFunc(t.Fields, other.Fields, func(a, b RecordField) bool {
		return a.Label == b.Label && a.Value.Equal(b.Value)
	})
}
func (t Record) Render() string {
	parts := lo.Map(t.Fields, func(f RecordField, _ int) string {
		return f.Label + "=" + f.Value.Render()
	})
	return "{" + strings.Join(parts, ", ") + "}"
}
func (t Record) Clone() Term {
	fields := lo.Map(t.Fields, func(f RecordField, _ int) RecordField {
		return RecordField{f.Label, f.Value.Clone()}
	})
	return Record{t.span, fields}
}
func (t Record) Shift(d, c int) Term {
	fields := lo.Map(t.Fields, func(f RecordField, _ int) RecordField {
		return RecordField{f.Label, f.Value.Shift(d, c)}
	})
	return Record{t.span, fields}
}

// Lookup returns the field labelled name and whether it was found.
func (t Record) Lookup(name string) (Term, bool) {
	i := slices.IndexFunc(t.Fields, func(f RecordField) bool { return f.Label == name })
	if i < 0 {
		return nil, false
	}
	return t.Fields[i].Value, true
}

// Projection is "r.l".
type Projection struct {
	span  lexer.Span
	Rec   Term
	Label string
}

func NewProjection(s lexer.Span, rec Term, label string) Projection { return Projection{s, rec, label} }
func (t Projection) Span() lexer.Span                               { return t.span }
func (t Projection) Equal(o Term) bool {
	other, ok := o.(Projection)
	return ok && t.Label == other.Label && t.Rec.Equal(other.Rec)
}
func (t Projection) Render() string { return renderAtom(t.Rec) + "." + t.Label }
func (t Projection) Clone() Term    { return Projection{t.span, t.Rec.Clone(), t.Label} }
func (t Projection) Shift(d, c int) Term {
	return Projection{t.span, t.Rec.Shift(d, c), t.Label}
}

// --- let ---

// Let is "let Name = Bound in Body"; Body's binder scope covers only Body.
type Let struct {
	span         lexer.Span
	Name         string
	Bound, Body  Term
}

func NewLet(s lexer.Span, name string, bound, body Term) Let { return Let{s, name, bound, body} }
func (t Let) Span() lexer.Span                                { return t.span }
func (t Let) Equal(o Term) bool {
	other, ok := o.(Let)
	return ok && t.Bound.Equal(other.Bound) && t.Body.Equal(other.Body)
}
func (t Let) Render() string {
	return "let " + t.Name + " = " + t.Bound.Render() + " in " + t.Body.Render()
}
func (t Let) Clone() Term { return Let{t.span, t.Name, t.Bound.Clone(), t.Body.Clone()} }
func (t Let) Shift(d, c int) Term {
	return Let{t.span, t.Name, t.Bound.Shift(d, c), t.Body.Shift(d, c+1)}
}

// --- references ---

type Ref struct {
	span lexer.Span
	Arg  Term
}

func NewRef(s lexer.Span, arg Term) Ref { return Ref{s, arg} }
func (t Ref) Span() lexer.Span          { return t.span }
func (t Ref) Equal(o Term) bool {
	other, ok := o.(Ref)
	return ok && t.Arg.Equal(other.Arg)
}
func (t Ref) Render() string      { return "ref " + renderAtom(t.Arg) }
func (t Ref) Clone() Term         { return Ref{t.span, t.Arg.Clone()} }
func (t Ref) Shift(d, c int) Term { return Ref{t.span, t.Arg.Shift(d, c)} }

type Deref struct {
	span lexer.Span
	Arg  Term
}

func NewDeref(s lexer.Span, arg Term) Deref { return Deref{s, arg} }
func (t Deref) Span() lexer.Span            { return t.span }
func (t Deref) Equal(o Term) bool {
	other, ok := o.(Deref)
	return ok && t.Arg.Equal(other.Arg)
}
func (t Deref) Render() string      { return "!" + renderAtom(t.Arg) }
func (t Deref) Clone() Term         { return Deref{t.span, t.Arg.Clone()} }
func (t Deref) Shift(d, c int) Term { return Deref{t.span, t.Arg.Shift(d, c)} }

// Assign is "Lhs := Rhs".
type Assign struct {
	span            lexer.Span
	Lhs, Rhs        Term
}

func NewAssign(s lexer.Span, lhs, rhs Term) Assign { return Assign{s, lhs, rhs} }
func (t Assign) Span() lexer.Span                  { return t.span }
func (t Assign) Equal(o Term) bool {
	other, ok := o.(Assign)
	return ok && t.Lhs.Equal(other.Lhs) && t.Rhs.Equal(other.Rhs)
}
func (t Assign) Render() string { return "(" + t.Lhs.Render() + " := " + t.Rhs.Render() + ")" }
func (t Assign) Clone() Term    { return Assign{t.span, t.Lhs.Clone(), t.Rhs.Clone()} }
func (t Assign) Shift(d, c int) Term {
	return Assign{t.span, t.Lhs.Shift(d, c), t.Rhs.Shift(d, c)}
}

// Sequence is "A; B", equivalent in meaning to "(l _:Unit. B) A"
// (spec.md §3).
type Sequence struct {
	span     lexer.Span
	Fst, Snd Term
}

func NewSequence(s lexer.Span, fst, snd Term) Sequence { return Sequence{s, fst, snd} }
func (t Sequence) Span() lexer.Span                    { return t.span }
func (t Sequence) Equal(o Term) bool {
	other, ok := o.(Sequence)
	return ok && t.Fst.Equal(other.Fst) && t.Snd.Equal(other.Snd)
}
func (t Sequence) Render() string { return t.Fst.Render() + "; " + t.Snd.Render() }
func (t Sequence) Clone() Term    { return Sequence{t.span, t.Fst.Clone(), t.Snd.Clone()} }
func (t Sequence) Shift(d, c int) Term {
	return Sequence{t.span, t.Fst.Shift(d, c), t.Snd.Shift(d, c)}
}

// Fix is the fixed-point combinator "fix t".
type Fix struct {
	span lexer.Span
	Arg  Term
}

func NewFix(s lexer.Span, arg Term) Fix { return Fix{s, arg} }
func (t Fix) Span() lexer.Span          { return t.span }
func (t Fix) Equal(o Term) bool {
	other, ok := o.(Fix)
	return ok && t.Arg.Equal(other.Arg)
}
func (t Fix) Render() string      { return "fix " + renderAtom(t.Arg) }
func (t Fix) Clone() Term         { return Fix{t.span, t.Arg.Clone()} }
func (t Fix) Shift(d, c int) Term { return Fix{t.span, t.Arg.Shift(d, c)} }

// StoreLocation is a runtime-only term produced by evaluating "ref v"; it
// never appears in parsed source (spec.md §3).
type StoreLocation struct {
	span lexer.Span
	N    int
}

func NewStoreLocation(n int) StoreLocation { return StoreLocation{N: n} }
func (t StoreLocation) Span() lexer.Span   { return t.span }
func (t StoreLocation) Equal(o Term) bool {
	other, ok := o.(StoreLocation)
	return ok && t.N == other.N
}
func (t StoreLocation) Render() string      { return "l[" + strconv.Itoa(t.N) + "]" }
func (t StoreLocation) Clone() Term         { return t }
func (t StoreLocation) Shift(d, c int) Term { return t }

// Parenthesized preserves an explicit "(...)" for pretty-printing parity
// (spec.md §3); it is transparent to Equal, Shift, and evaluation.
type Parenthesized struct {
	span lexer.Span
	Inner Term
}

func NewParenthesized(s lexer.Span, inner Term) Parenthesized { return Parenthesized{s, inner} }
func (t Parenthesized) Span() lexer.Span                      { return t.span }
func (t Parenthesized) Equal(o Term) bool {
	if other, ok := o.(Parenthesized); ok {
		return t.Inner.Equal(other.Inner)
	}
	return t.Inner.Equal(o)
}
func (t Parenthesized) Render() string { return "(" + t.Inner.Render() + ")" }
func (t Parenthesized) Clone() Term    { return Parenthesized{t.span, t.Inner.Clone()} }
func (t Parenthesized) Shift(d, c int) Term {
	return Parenthesized{t.span, t.Inner.Shift(d, c)}
}

// Unwrap strips any number of Parenthesized wrappers, the way the checker
// and evaluator look through printing-only nodes to reach real structure.
func Unwrap(t Term) Term {
	for {
		p, ok := t.(Parenthesized)
		if !ok {
			return t
		}
		t = p.Inner
	}
}
