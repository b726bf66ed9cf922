// Package fragment provides spliceable building blocks for generated Go
// declarations: parameter lists, qualifier sets and whole function specs.
// Fragments stay structured until the final emission boundary, where they
// are lowered to source text.
package fragment

import (
	"errors"
	"fmt"
	"go/types"
	"strings"
)

// ErrNotAFunction is returned when a parameter fragment is requested from an
// object that is not a function.
var ErrNotAFunction = errors.New("argument must be a function")

// Param is a single (type, name, optional default) parameter triple. A nil
// Default means "no default value", which is distinct from a default that
// happens to be the type's zero value.
type Param struct {
	Type     string
	Name     string
	Default  *string
	Variadic bool
}

// HasDefault reports whether the parameter carries a default value.
func (p Param) HasDefault() bool { return p.Default != nil }

// DefaultValue returns the default value text, or the empty string when no
// default is set.
func (p Param) DefaultValue() string {
	if p.Default == nil {
		return ""
	}
	return *p.Default
}

// ParamList is an ordered parameter fragment. The zero value is an empty
// list. Lists are immutable: Concat returns a new list.
type ParamList struct {
	params []Param
}

// NewParam builds a single-parameter fragment.
func NewParam(typ, name string) ParamList {
	return ParamList{params: []Param{{Type: typ, Name: name}}}
}

// NewParamDefault builds a single-parameter fragment carrying a default
// value.
func NewParamDefault(typ, name, def string) ParamList {
	return ParamList{params: []Param{{Type: typ, Name: name, Default: &def}}}
}

// ParamsFromFunc extracts the declared parameter list of a function object,
// verbatim. Any non-function object is rejected.
func ParamsFromFunc(obj types.Object, qual types.Qualifier) (ParamList, error) {
	fn, ok := obj.(*types.Func)
	if !ok {
		return ParamList{}, ErrNotAFunction
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return ParamList{}, ErrNotAFunction
	}
	return ParamsFromSignature(sig, qual), nil
}

// ParamsFromSignature extracts the parameter list of a signature. A trailing
// variadic parameter keeps its marker. Unnamed and blank parameters are
// assigned positional names so the generated code can forward them.
func ParamsFromSignature(sig *types.Signature, qual types.Qualifier) ParamList {
	tuple := sig.Params()
	params := make([]Param, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		v := tuple.At(i)
		p := Param{Name: v.Name()}
		if p.Name == "" || p.Name == "_" {
			p.Name = fmt.Sprintf("arg%d", i)
		}
		if sig.Variadic() && i == tuple.Len()-1 {
			p.Variadic = true
			p.Type = types.TypeString(v.Type().(*types.Slice).Elem(), qual)
		} else {
			p.Type = types.TypeString(v.Type(), qual)
		}
		params = append(params, p)
	}
	return ParamList{params: params}
}

// Concat appends the given fragments after l, left to right. Concatenation
// is purely positional; duplicate names are not detected here and surface as
// a compile error in the generated code.
func (l ParamList) Concat(more ...ParamList) ParamList {
	out := make([]Param, 0, len(l.params))
	out = append(out, l.params...)
	for _, m := range more {
		out = append(out, m.params...)
	}
	return ParamList{params: out}
}

// Len returns the number of parameters in the fragment.
func (l ParamList) Len() int { return len(l.params) }

// At returns the i-th parameter.
func (l ParamList) At(i int) Param { return l.params[i] }

// Names returns the parameter names in order.
func (l ParamList) Names() []string {
	names := make([]string, len(l.params))
	for i, p := range l.params {
		names[i] = p.Name
	}
	return names
}

// Decl renders the fragment as a declaration list, e.g.
// "ctx context.Context, ids ...string".
func (l ParamList) Decl() string {
	parts := make([]string, len(l.params))
	for i, p := range l.params {
		if p.Variadic {
			parts[i] = p.Name + " ..." + p.Type
		} else {
			parts[i] = p.Name + " " + p.Type
		}
	}
	return strings.Join(parts, ", ")
}

// Args renders the fragment as a call-site forwarding list, e.g.
// "ctx, ids...".
func (l ParamList) Args() string {
	parts := make([]string, len(l.params))
	for i, p := range l.params {
		if p.Variadic {
			parts[i] = p.Name + "..."
		} else {
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}
