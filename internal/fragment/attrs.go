package fragment

import (
	"go/types"
	"strings"
)

// Attr is a single method qualifier token.
type Attr string

// Qualifier tokens, in their canonical rendering order. The receiver group
// (AttrValue, AttrPointer) is mutually exclusive and always renders last.
const (
	AttrNoError  Attr = "noerror"  // no trailing error result
	AttrGetter   Attr = "getter"   // no inputs beyond context, one result
	AttrPure     Attr = "pure"     // declared side-effect free
	AttrReadonly Attr = "readonly" // declared read-only (maps to GET)
	AttrValue    Attr = "value"    // value receiver
	AttrPointer  Attr = "pointer"  // pointer receiver
)

var attrOrder = []Attr{AttrNoError, AttrGetter, AttrPure, AttrReadonly}

// Attrs is an ordered qualifier set for a function. The zero value is empty.
type Attrs struct {
	flags map[Attr]bool
	recv  Attr
}

// NewAttrs builds a qualifier set from the given tokens. Receiver tokens
// replace any previously set receiver token, so at most one applies.
func NewAttrs(attrs ...Attr) Attrs {
	var a Attrs
	for _, attr := range attrs {
		a = a.With(attr)
	}
	return a
}

// With returns a copy of the set with attr added.
func (a Attrs) With(attr Attr) Attrs {
	out := Attrs{flags: make(map[Attr]bool, len(a.flags)+1), recv: a.recv}
	for k, v := range a.flags {
		out.flags[k] = v
	}
	if attr == AttrValue || attr == AttrPointer {
		out.recv = attr
	} else {
		out.flags[attr] = true
	}
	return out
}

// Has reports whether attr is in the set.
func (a Attrs) Has(attr Attr) bool {
	if attr == AttrValue || attr == AttrPointer {
		return a.recv == attr
	}
	return a.flags[attr]
}

// List returns the qualifiers in canonical order: the flag tokens first,
// then the receiver token if any.
func (a Attrs) List() []Attr {
	var out []Attr
	for _, attr := range attrOrder {
		if a.flags[attr] {
			out = append(out, attr)
		}
	}
	if a.recv != "" {
		out = append(out, a.recv)
	}
	return out
}

// String joins the qualifiers with single spaces, no trailing space.
func (a Attrs) String() string {
	list := a.List()
	parts := make([]string, len(list))
	for i, attr := range list {
		parts[i] = string(attr)
	}
	return strings.Join(parts, " ")
}

// ExtractAttrs derives the qualifier set of a function signature. Signature
// shape contributes noerror and getter; directive names (from //restgen:
// comments) contribute pure and readonly; a receiver, when present,
// contributes exactly one of value or pointer.
func ExtractAttrs(sig *types.Signature, directives []string) Attrs {
	var a Attrs
	if !hasErrorResult(sig) {
		a = a.With(AttrNoError)
	}
	if isGetterShape(sig) {
		a = a.With(AttrGetter)
	}
	for _, d := range directives {
		switch d {
		case string(AttrPure):
			a = a.With(AttrPure)
		case string(AttrReadonly):
			a = a.With(AttrReadonly)
		}
	}
	// go/types gives interface methods a receiver too (the interface
	// itself); the receiver group only describes concrete receivers.
	if recv := sig.Recv(); recv != nil && !isInterfaceRecv(recv.Type()) {
		if _, ok := recv.Type().(*types.Pointer); ok {
			a = a.With(AttrPointer)
		} else {
			a = a.With(AttrValue)
		}
	}
	return a
}

func hasErrorResult(sig *types.Signature) bool {
	results := sig.Results()
	if results.Len() == 0 {
		return false
	}
	return isErrorType(results.At(results.Len() - 1).Type())
}

// isGetterShape reports whether the signature takes no inputs beyond an
// optional leading context.Context and yields exactly one non-error result.
func isGetterShape(sig *types.Signature) bool {
	params := sig.Params()
	n := params.Len()
	if n > 0 && isContextType(params.At(0).Type()) {
		n--
	}
	if n != 0 {
		return false
	}
	results := sig.Results()
	values := results.Len()
	if hasErrorResult(sig) {
		values--
	}
	return values == 1
}

func isInterfaceRecv(t types.Type) bool {
	_, ok := t.Underlying().(*types.Interface)
	return ok
}

func isErrorType(t types.Type) bool {
	if named, ok := t.(*types.Named); ok {
		t = named.Underlying()
	}
	iface, ok := t.(*types.Interface)
	if !ok {
		return false
	}
	return iface.NumMethods() == 1 && iface.Method(0).Name() == "Error"
}

func isContextType(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}
