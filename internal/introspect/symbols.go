package introspect

import (
	"go/types"
)

// SymbolSet is an ordered, deduplicated collection of user-defined named
// types. Iteration order is discovery order; membership is tracked in a
// separate index so insertion stays O(1).
type SymbolSet struct {
	order []*types.TypeName
	seen  map[*types.TypeName]struct{}
}

// NewSymbolSet returns an empty SymbolSet.
func NewSymbolSet() *SymbolSet {
	return &SymbolSet{seen: make(map[*types.TypeName]struct{})}
}

// Add records obj if it has not been seen before. It reports whether the
// symbol was newly added.
func (s *SymbolSet) Add(obj *types.TypeName) bool {
	if _, ok := s.seen[obj]; ok {
		return false
	}
	s.seen[obj] = struct{}{}
	s.order = append(s.order, obj)
	return true
}

// Contains reports whether obj is in the set.
func (s *SymbolSet) Contains(obj *types.TypeName) bool {
	_, ok := s.seen[obj]
	return ok
}

// Len returns the number of symbols in the set.
func (s *SymbolSet) Len() int { return len(s.order) }

// At returns the i-th symbol in discovery order.
func (s *SymbolSet) At(i int) *types.TypeName { return s.order[i] }

// TypeNames returns all symbols in discovery order.
func (s *SymbolSet) TypeNames() []*types.TypeName {
	out := make([]*types.TypeName, len(s.order))
	copy(out, s.order)
	return out
}

// Names returns the unqualified names of all symbols in discovery order.
func (s *SymbolSet) Names() []string {
	names := make([]string, len(s.order))
	for i, obj := range s.order {
		names[i] = obj.Name()
	}
	return names
}

// Collect returns every user-defined named type reachable from t through
// slices, arrays, maps, pointers, channels and function signatures. Named
// types are leaves: their definitions are not walked into. Builtins, basic
// types and types from the universe scope (error, comparable) yield nothing.
// Collect never fails; a type with no user-defined leaves produces an empty
// set.
func Collect(t types.Type) *SymbolSet {
	set := NewSymbolSet()
	collectInto(t, set)
	return set
}

func collectInto(t types.Type, set *SymbolSet) {
	switch t := t.(type) {
	case *types.Alias:
		if obj := t.Obj(); obj.Pkg() != nil {
			set.Add(obj)
		}
	case *types.Named:
		if obj := t.Obj(); obj.Pkg() != nil {
			set.Add(obj)
		}
		// Instantiated generics reference their type arguments too.
		if args := t.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				collectInto(args.At(i), set)
			}
		}
	case *types.Slice:
		collectInto(t.Elem(), set)
	case *types.Array:
		collectInto(t.Elem(), set)
	case *types.Map:
		// Value before key, so that map[K]V contributes V's symbols first.
		collectInto(t.Elem(), set)
		collectInto(t.Key(), set)
	case *types.Pointer:
		collectInto(t.Elem(), set)
	case *types.Chan:
		collectInto(t.Elem(), set)
	case *types.Signature:
		// Function-typed parameters reference types the generated code must
		// be able to import as well. Results first, matching the per-method
		// traversal order used by ResolveImports.
		results := t.Results()
		for i := 0; i < results.Len(); i++ {
			collectInto(results.At(i).Type(), set)
		}
		params := t.Params()
		for i := 0; i < params.Len(); i++ {
			collectInto(params.At(i).Type(), set)
		}
	}
}
