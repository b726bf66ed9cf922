package introspect

import (
	"fmt"
	"go/types"
	"path"
	"strconv"
)

// Import is one entry of an ImportSet: an import path plus the name the
// package declares. An empty Name means the name is unknown and assumed to
// match the last path segment.
type Import struct {
	Path string
	Name string
}

// ImportSet is an ordered, deduplicated collection of package imports.
// Insertion order is preserved.
type ImportSet struct {
	order []Import
	seen  map[string]struct{}
}

// NewImportSet returns an empty ImportSet.
func NewImportSet() *ImportSet {
	return &ImportSet{seen: make(map[string]struct{})}
}

// Add records path if it has not been seen before and reports whether it was
// newly added. The package name is left unknown.
func (s *ImportSet) Add(path string) bool {
	return s.AddNamed(path, "")
}

// AddNamed records path together with the package's declared name.
func (s *ImportSet) AddNamed(path, name string) bool {
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	s.order = append(s.order, Import{Path: path, Name: name})
	return true
}

// Contains reports whether path is in the set.
func (s *ImportSet) Contains(path string) bool {
	_, ok := s.seen[path]
	return ok
}

// Len returns the number of paths in the set.
func (s *ImportSet) Len() int { return len(s.order) }

// Paths returns all import paths in insertion order.
func (s *ImportSet) Paths() []string {
	out := make([]string, len(s.order))
	for i, imp := range s.order {
		out[i] = imp.Path
	}
	return out
}

// Specs renders each entry as it appears inside an import block: the quoted
// path, prefixed with the package name when it does not match the last path
// segment (gopkg.in/yaml.v3 imports as yaml, for example).
func (s *ImportSet) Specs() []string {
	out := make([]string, len(s.order))
	for i, imp := range s.order {
		spec := strconv.Quote(imp.Path)
		if imp.Name != "" && imp.Name != path.Base(imp.Path) {
			spec = imp.Name + " " + spec
		}
		out[i] = spec
	}
	return out
}

// Without returns a copy of the set with path removed. Used to drop the
// package the generated code is emitted into.
func (s *ImportSet) Without(path string) *ImportSet {
	out := NewImportSet()
	for _, imp := range s.order {
		if imp.Path != path {
			out.AddNamed(imp.Path, imp.Name)
		}
	}
	return out
}

// Qualifier returns a types.Qualifier that renders types from self
// unqualified and every other package by its name.
func Qualifier(self *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == self {
			return ""
		}
		return p.Name()
	}
}

// ResolveImports walks every method signature of the interface type t and
// returns the ordered, deduplicated set of import paths needed to reference
// the types those signatures use. Per method, result types are walked before
// parameter types, each in declaration order. Symbols whose defining package
// cannot be determined (builtins, universe-scope types) are skipped silently.
//
// t must be an interface or a named type whose underlying type is an
// interface; anything else is an error.
func ResolveImports(t types.Type) (*ImportSet, error) {
	iface, ok := t.Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("type %s is not an interface", types.TypeString(t, nil))
	}
	set := NewImportSet()
	syms := NewSymbolSet()
	for i := 0; i < iface.NumMethods(); i++ {
		sig, ok := iface.Method(i).Type().(*types.Signature)
		if !ok {
			continue
		}
		start := syms.Len()
		results := sig.Results()
		for j := 0; j < results.Len(); j++ {
			collectInto(results.At(j).Type(), syms)
		}
		params := sig.Params()
		for j := 0; j < params.Len(); j++ {
			collectInto(params.At(j).Type(), syms)
		}
		for j := start; j < syms.Len(); j++ {
			pkg := syms.At(j).Pkg()
			if pkg == nil {
				continue
			}
			set.AddNamed(pkg.Path(), pkg.Name())
		}
	}
	return set, nil
}
