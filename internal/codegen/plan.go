package codegen

import (
	"fmt"
	"go/types"
	"strings"

	"restgen/internal/fragment"
	"restgen/internal/introspect"
)

// Route is the HTTP binding of an interface method, taken from a
// //restgen:route directive or derived from the method's qualifier set.
type Route struct {
	Method     string
	Path       string
	PathParams []string // {param} segment names, in path order
}

// RouteFor resolves the route of a method. Without an explicit directive the
// path is "/" plus the lowercased method name, and the verb is GET for
// readonly/getter methods and POST otherwise.
func RouteFor(m *introspect.Method) (Route, error) {
	if d, ok := m.Directive("route"); ok {
		if len(d.Args) != 2 {
			return Route{}, fmt.Errorf("method %s: restgen:route wants METHOD /path, got %q", m.Name, strings.Join(d.Args, " "))
		}
		r := Route{Method: strings.ToUpper(d.Args[0]), Path: d.Args[1]}
		r.PathParams = pathParamNames(r.Path)
		return r, nil
	}
	attrs := fragment.ExtractAttrs(m.Sig, m.DirectiveNames())
	verb := "POST"
	if attrs.Has(fragment.AttrReadonly) || attrs.Has(fragment.AttrGetter) {
		verb = "GET"
	}
	return Route{Method: verb, Path: "/" + strings.ToLower(m.Name)}, nil
}

func pathParamNames(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			names = append(names, strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}"))
		}
	}
	return names
}

// BoundParam is a method parameter bound to a position in the HTTP exchange.
type BoundParam struct {
	Name     string
	Type     types.Type
	TypeStr  string
	Variadic bool
}

// MethodPlan is everything the client and server generators need to emit
// code for one interface method.
type MethodPlan struct {
	Method *introspect.Method
	Route  Route
	Attrs  fragment.Attrs
	Params fragment.ParamList // full declared parameter fragment, context included

	HasCtx      bool
	PathParams  []BoundParam // in path order
	QueryParams []BoundParam
	BodyParams  []BoundParam

	// Result is the single non-error result type, nil when the method
	// returns nothing (or only an error).
	Result    types.Type
	ResultStr string
	HasError  bool
}

// PlanMethod classifies a method's parameters against its route: path
// segments bind by name, the rest go to the query string for bodyless verbs
// and to the JSON body otherwise. At most one non-error result and an
// optional trailing error are supported.
func PlanMethod(m *introspect.Method, qual types.Qualifier) (*MethodPlan, error) {
	route, err := RouteFor(m)
	if err != nil {
		return nil, err
	}
	plan := &MethodPlan{
		Method: m,
		Route:  route,
		Attrs:  fragment.ExtractAttrs(m.Sig, m.DirectiveNames()),
		Params: fragment.ParamsFromSignature(m.Sig, qual),
	}

	// Results: (), (error), (T) or (T, error).
	results := m.Sig.Results()
	plan.HasError = !plan.Attrs.Has(fragment.AttrNoError)
	values := results.Len()
	if plan.HasError {
		values--
	}
	switch values {
	case 0:
	case 1:
		plan.Result = results.At(0).Type()
		plan.ResultStr = types.TypeString(plan.Result, qual)
	default:
		return nil, fmt.Errorf("method %s: unsupported result shape (want at most one value and an optional trailing error)", m.Name)
	}

	// Parameters: optional leading context, then path/query/body binding.
	byName := make(map[string]BoundParam)
	var order []BoundParam
	for i := 0; i < plan.Params.Len(); i++ {
		p := plan.Params.At(i)
		t := m.Sig.Params().At(i).Type()
		if i == 0 && isContext(t) {
			plan.HasCtx = true
			continue
		}
		bp := BoundParam{Name: p.Name, Type: t, TypeStr: p.Type, Variadic: p.Variadic}
		byName[p.Name] = bp
		order = append(order, bp)
	}
	inPath := make(map[string]bool)
	for _, name := range route.PathParams {
		bp, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("method %s: path parameter {%s} has no matching argument", m.Name, name)
		}
		if bp.Variadic {
			return nil, fmt.Errorf("method %s: path parameter {%s} cannot be variadic", m.Name, name)
		}
		inPath[name] = true
		plan.PathParams = append(plan.PathParams, bp)
	}
	bodyless := route.Method == "GET" || route.Method == "DELETE" || route.Method == "HEAD"
	for _, bp := range order {
		if inPath[bp.Name] {
			continue
		}
		if bodyless {
			plan.QueryParams = append(plan.QueryParams, bp)
		} else {
			plan.BodyParams = append(plan.BodyParams, bp)
		}
	}
	return plan, nil
}

// ZeroValue renders the zero value of t for use in early returns.
func ZeroValue(t types.Type, qual types.Qualifier) string {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case info&types.IsBoolean != 0:
			return "false"
		case info&types.IsNumeric != 0:
			return "0"
		case info&types.IsString != 0:
			return `""`
		default:
			return "nil"
		}
	case *types.Struct, *types.Array:
		return types.TypeString(t, qual) + "{}"
	default:
		return "nil"
	}
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}
