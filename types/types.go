// Package types implements the structural type values of fullsimple:
// Bool, Nat, Unit, Top, IllTyped, Function, Record, and Ref.
package types

import (
	"sort"
	"strings"
)

// Type is a structural type. Two Types are Equal if their structure is
// equal; Record equality is positional (label-type pairs compared in
// order), while subtyping and join treat records as unordered field sets.
type Type interface {
	isType()
	// Equal reports structural equality.
	Equal(Type) bool
	// String renders the type the way the checker's diagnostics do.
	String() string
}

var (
	_ Type = Bool{}
	_ Type = Nat{}
	_ Type = Unit{}
	_ Type = Top{}
	_ Type = IllTyped{}
	_ Type = Function{}
	_ Type = Record{}
	_ Type = Ref{}
)

// Bool is the type of true/false.
type Bool struct{}

func (Bool) isType()          {}
func (Bool) String() string   { return "Bool" }
func (Bool) Equal(t Type) bool {
	_, ok := t.(Bool)
	return ok
}

// Nat is the type of naturals built from 0 and succ.
type Nat struct{}

func (Nat) isType()         {}
func (Nat) String() string  { return "Nat" }
func (Nat) Equal(t Type) bool {
	_, ok := t.(Nat)
	return ok
}

// Unit is the type of the unit value.
type Unit struct{}

func (Unit) isType()          {}
func (Unit) String() string   { return "Unit" }
func (Unit) Equal(t Type) bool {
	_, ok := t.(Unit)
	return ok
}

// Top is the universal supertype: every type is a subtype of Top.
type Top struct{}

func (Top) isType()          {}
func (Top) String() string   { return "Top" }
func (Top) Equal(t Type) bool {
	_, ok := t.(Top)
	return ok
}

// IllTyped is the sentinel returned when a subterm fails to type. It
// propagates monotonically through the typing rules; see check.TypeOf.
type IllTyped struct{}

func (IllTyped) isType()          {}
func (IllTyped) String() string   { return "<illtyped>" }
func (IllTyped) Equal(t Type) bool {
	_, ok := t.(IllTyped)
	return ok
}

// Function is a function type Dom -> Cod.
type Function struct {
	Dom Type
	Cod Type
}

func (Function) isType() {}

func (f Function) String() string {
	dom := f.Dom.String()
	if _, ok := f.Dom.(Function); ok {
		dom = "(" + dom + ")"
	}
	return dom + " -> " + f.Cod.String()
}

func (f Function) Equal(t Type) bool {
	o, ok := t.(Function)
	return ok && f.Dom.Equal(o.Dom) && f.Cod.Equal(o.Cod)
}

// Field is one labelled field of a Record type.
type Field struct {
	Label string
	Type  Type
}

// Record is a structural record type: an ordered list of labelled fields,
// unique by label. Equal compares fields positionally; use Lookup or the
// subtype package for the unordered, set-like comparisons the spec
// requires at subtyping and join.
type Record struct {
	Fields []Field
}

func (Record) isType() {}

func (r Record) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Label + ":" + f.Type.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (r Record) Equal(t Type) bool {
	o, ok := t.(Record)
	if !ok || len(r.Fields) != len(o.Fields) {
		return false
	}
	for i, f := range r.Fields {
		if f.Label != o.Fields[i].Label || !f.Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// Lookup returns the type of the field labelled name, and whether it exists.
func (r Record) Lookup(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Label == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Labels returns the record's field labels, sorted, so two records can be
// compared as unordered label sets. The subtype package does not use it;
// it looks fields up with Lookup instead.
func (r Record) Labels() []string {
	labels := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		labels[i] = f.Label
	}
	sort.Strings(labels)
	return labels
}

// Ref is the type of a mutable reference cell holding an Inner value.
// Ref is invariant: Ref A <: Ref B iff A = B (spec.md §4.E).
type Ref struct {
	Inner Type
}

func (Ref) isType() {}

func (r Ref) String() string { return "Ref " + parenIfCompound(r.Inner) }

func (r Ref) Equal(t Type) bool {
	o, ok := t.(Ref)
	return ok && r.Inner.Equal(o.Inner)
}

func parenIfCompound(t Type) string {
	switch t.(type) {
	case Function, Ref:
		return "(" + t.String() + ")"
	default:
		return t.String()
	}
}

// IsIllTyped reports whether t is the IllTyped sentinel.
func IsIllTyped(t Type) bool {
	_, ok := t.(IllTyped)
	return ok
}
