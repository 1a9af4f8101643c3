// Package store implements the mutable reference-cell store, spec.md §3's
// Store "Σ": a monotonically-growing table of terms addressed by
// ast.StoreLocation index, plus the parallel Typing table the checker
// consults when re-typing a term that already contains locations.
package store

import (
	"github.com/mistlang/fullsimple/ast"
	"github.com/mistlang/fullsimple/types"
)

// Store holds the current value of every allocated reference cell.
// Locations are never freed (spec.md's Non-goals rule out garbage
// collection of store locations): Alloc only ever appends.
type Store struct {
	cells []ast.Term
}

// New returns an empty Store.
func New() *Store { return &Store{} }

// Alloc appends a new cell holding v and returns its location.
func (s *Store) Alloc(v ast.Term) int {
	s.cells = append(s.cells, v)
	return len(s.cells) - 1
}

// Get returns the current value at loc. loc must have come from Alloc;
// out-of-range access is a programming error, not a runtime fault a
// fullsimple program can trigger (the evaluator only ever builds
// StoreLocation values from Alloc's return value).
func (s *Store) Get(loc int) ast.Term { return s.cells[loc] }

// Set overwrites the value at loc, dropping the old one (spec.md §5:
// "':=' drops the old value").
func (s *Store) Set(loc int, v ast.Term) { s.cells[loc] = v }

// Len returns the number of allocated cells.
func (s *Store) Len() int { return len(s.cells) }

// Typing maps a store location to the type of the value it was allocated
// to hold. Entries are added with Record; the evaluator allocates cells in
// a Store only and does not add entries here. check.TypeOf consults it when
// a StoreLocation appears in a term being re-typed.
type Typing map[int]types.Type

// NewTyping returns an empty Typing.
func NewTyping() Typing { return make(Typing) }

// Record associates loc with t, the type of the value ref was applied to.
func (ty Typing) Record(loc int, t types.Type) { ty[loc] = t }

// Lookup returns the type recorded for loc, if any.
func (ty Typing) Lookup(loc int) (types.Type, bool) {
	if ty == nil {
		return nil, false
	}
	t, ok := ty[loc]
	return t, ok
}
