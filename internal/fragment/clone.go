package fragment

import (
	"go/types"
	"strings"
)

// FuncSpec is a synthesized function: the structured form of a declaration
// that will be spliced into a generated file. It is built from an
// introspected source signature and a new body, and lowered to source text
// only by Render.
type FuncSpec struct {
	Recv    string // rendered receiver, e.g. "c *StoreClient"; empty for a plain func
	Name    string
	Params  ParamList
	Results string // rendered result list, e.g. "(*Item, error)"; empty for none
	Attrs   Attrs
	Body    string // verbatim body text, without the surrounding braces
}

// Clone builds a FuncSpec with the same parameters and results as sig, the
// given qualifier set, and the supplied body. The synthesized function keeps
// the source contract; only the body (and optionally the name, via
// WithName) changes.
func Clone(name string, sig *types.Signature, qual types.Qualifier, attrs Attrs, body string) FuncSpec {
	return FuncSpec{
		Name:    name,
		Params:  ParamsFromSignature(sig, qual),
		Results: ResultsString(sig, qual),
		Attrs:   attrs,
		Body:    body,
	}
}

// WithName returns a copy of the spec under a different name, so a renamed
// clone can coexist with one using the source name in the same scope.
func (f FuncSpec) WithName(name string) FuncSpec {
	f.Name = name
	return f
}

// WithRecv returns a copy of the spec bound to a receiver.
func (f FuncSpec) WithRecv(recv string) FuncSpec {
	f.Recv = recv
	return f
}

// Render lowers the spec to Go source. The qualifier set is recorded as a
// marker comment above the declaration so regeneration can recover it.
func (f FuncSpec) Render() string {
	var b strings.Builder
	if s := f.Attrs.String(); s != "" {
		b.WriteString("// restgen:attrs ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString("func ")
	if f.Recv != "" {
		b.WriteString("(")
		b.WriteString(f.Recv)
		b.WriteString(") ")
	}
	b.WriteString(f.Name)
	b.WriteString("(")
	b.WriteString(f.Params.Decl())
	b.WriteString(")")
	if f.Results != "" {
		b.WriteString(" ")
		b.WriteString(f.Results)
	}
	b.WriteString(" {\n")
	body := strings.TrimRight(f.Body, "\n")
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// ResultsString renders a signature's result list: empty for none, the bare
// type for a single result, parenthesized otherwise.
func ResultsString(sig *types.Signature, qual types.Qualifier) string {
	results := sig.Results()
	switch results.Len() {
	case 0:
		return ""
	case 1:
		return types.TypeString(results.At(0).Type(), qual)
	default:
		parts := make([]string, results.Len())
		for i := 0; i < results.Len(); i++ {
			parts[i] = types.TypeString(results.At(i).Type(), qual)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
}
