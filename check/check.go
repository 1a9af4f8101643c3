// Package check implements the fullsimple typing judgement (spec.md §4.F):
// a context-threaded TypeOf that assigns every term a types.Type, using
// types.IllTyped as an absorbing sentinel rather than an error return, so
// a stuck subterm never prevents the rest of a term from being typed.
package check

import (
	"golang.org/x/exp/maps"

	"github.com/mistlang/fullsimple/ast"
	"github.com/mistlang/fullsimple/store"
	"github.com/mistlang/fullsimple/subtype"
	"github.com/mistlang/fullsimple/types"
)

// Context is the ordered sequence of de Bruijn-indexed bindings in scope,
// innermost last, mirroring the way the parser's own bound-name stack is
// built up around Lambda/Let (spec.md §4.D, §4.F).
type Context struct {
	bindings []types.Type
}

// NewContext returns an empty typing context.
func NewContext() *Context { return &Context{} }

// Push introduces a new innermost binding.
func (c *Context) Push(t types.Type) { c.bindings = append(c.bindings, t) }

// Pop removes the innermost binding.
func (c *Context) Pop() { c.bindings = c.bindings[:len(c.bindings)-1] }

// Lookup resolves a de Bruijn index to its bound type.
func (c *Context) Lookup(idx int) (types.Type, bool) {
	if idx < 0 || idx >= len(c.bindings) {
		return nil, false
	}
	return c.bindings[len(c.bindings)-1-idx], true
}

// Snapshot returns a copy of the store typing so re-typing a term never
// mutates the caller's map in place (OQ-2). Mirrors the teacher's habit
// of cloning a shared map before threading it through a checking pass.
func Snapshot(st store.Typing) store.Typing {
	if st == nil {
		return nil
	}
	return maps.Clone(st)
}

// TypeOf computes the type of t under ctx, consulting st to resolve any
// StoreLocation term (spec.md §9: "the store typing is consulted lazily,
// only when the checker encounters a StoreLocation"). TypeOf is total: it
// never panics on an ill-typed subterm, returning types.IllTyped instead,
// which every rule below propagates monotonically.
func TypeOf(ctx *Context, st store.Typing, t ast.Term) types.Type {
	switch t := t.(type) {
	case ast.True, ast.False:
		return types.Bool{}
	case ast.Zero:
		return types.Nat{}
	case ast.UnitVal:
		return types.Unit{}
	case ast.Succ:
		if _, ok := TypeOf(ctx, st, t.Arg).(types.Nat); ok {
			return types.Nat{}
		}
		return types.IllTyped{}
	case ast.Pred:
		if _, ok := TypeOf(ctx, st, t.Arg).(types.Nat); ok {
			return types.Nat{}
		}
		return types.IllTyped{}
	case ast.IsZero:
		if _, ok := TypeOf(ctx, st, t.Arg).(types.Nat); ok {
			return types.Bool{}
		}
		return types.IllTyped{}
	case ast.If:
		if _, ok := TypeOf(ctx, st, t.Cond).(types.Bool); !ok {
			return types.IllTyped{}
		}
		thenT, elseT := TypeOf(ctx, st, t.Then), TypeOf(ctx, st, t.Else)
		if types.IsIllTyped(thenT) || types.IsIllTyped(elseT) {
			return types.IllTyped{}
		}
		return subtype.Join(thenT, elseT)
	case ast.Variable:
		if ty, ok := ctx.Lookup(t.Idx); ok {
			return ty
		}
		return types.IllTyped{}
	case ast.Lambda:
		ctx.Push(t.DomType)
		bodyT := TypeOf(ctx, st, t.Body)
		ctx.Pop()
		if types.IsIllTyped(bodyT) {
			return types.IllTyped{}
		}
		return types.Function{Dom: t.DomType, Cod: bodyT}
	case ast.Application:
		funT := TypeOf(ctx, st, t.Fun)
		argT := TypeOf(ctx, st, t.Arg)
		fn, ok := funT.(types.Function)
		if !ok || types.IsIllTyped(argT) || !subtype.Sub(argT, fn.Dom) {
			return types.IllTyped{}
		}
		return fn.Cod
	case ast.Record:
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			ft := TypeOf(ctx, st, f.Value)
			if types.IsIllTyped(ft) {
				return types.IllTyped{}
			}
			fields[i] = types.Field{Label: f.Label, Type: ft}
		}
		return types.Record{Fields: fields}
	case ast.Projection:
		recT := TypeOf(ctx, st, t.Rec)
		rec, ok := recT.(types.Record)
		if !ok {
			return types.IllTyped{}
		}
		fieldT, ok := rec.Lookup(t.Label)
		if !ok {
			return types.IllTyped{}
		}
		return fieldT
	case ast.Let:
		boundT := TypeOf(ctx, st, t.Bound)
		ctx.Push(boundT)
		bodyT := TypeOf(ctx, st, t.Body)
		ctx.Pop()
		if types.IsIllTyped(boundT) {
			return types.IllTyped{}
		}
		return bodyT
	case ast.Ref:
		argT := TypeOf(ctx, st, t.Arg)
		if types.IsIllTyped(argT) {
			return types.IllTyped{}
		}
		return types.Ref{Inner: argT}
	case ast.Deref:
		argT := TypeOf(ctx, st, t.Arg)
		ref, ok := argT.(types.Ref)
		if !ok {
			return types.IllTyped{}
		}
		return ref.Inner
	case ast.Assign:
		lhsT := TypeOf(ctx, st, t.Lhs)
		rhsT := TypeOf(ctx, st, t.Rhs)
		ref, ok := lhsT.(types.Ref)
		if !ok || types.IsIllTyped(rhsT) || !subtype.Sub(rhsT, ref.Inner) {
			return types.IllTyped{}
		}
		return types.Unit{}
	case ast.Sequence:
		fstT := TypeOf(ctx, st, t.Fst)
		if _, ok := fstT.(types.Unit); !ok {
			return types.IllTyped{}
		}
		return TypeOf(ctx, st, t.Snd)
	case ast.Fix:
		argT := TypeOf(ctx, st, t.Arg)
		fn, ok := argT.(types.Function)
		if !ok || !fn.Dom.Equal(fn.Cod) {
			return types.IllTyped{}
		}
		return fn.Dom
	case ast.StoreLocation:
		if ty, ok := st.Lookup(t.N); ok {
			return types.Ref{Inner: ty}
		}
		return types.IllTyped{}
	case ast.Parenthesized:
		return TypeOf(ctx, st, ast.Unwrap(t))
	default:
		return types.IllTyped{}
	}
}
