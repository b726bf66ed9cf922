package codegen

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restgen/internal/introspect"
)

var planPkg = types.NewPackage("example.com/api", "api")

func ctxType() types.Type {
	pkg := types.NewPackage("context", "context")
	iface := types.NewInterfaceType(nil, nil)
	iface.Complete()
	return types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Context", nil), iface, nil)
}

func errResult() *types.Var {
	return types.NewParam(token.NoPos, planPkg, "", types.Universe.Lookup("error").Type())
}

func param(name string, t types.Type) *types.Var {
	return types.NewParam(token.NoPos, planPkg, name, t)
}

func planMethod(name string, params, results []*types.Var, dirs ...introspect.Directive) *introspect.Method {
	sig := types.NewSignatureType(nil, nil, nil, types.NewTuple(params...), types.NewTuple(results...), false)
	return &introspect.Method{Name: name, Sig: sig, Directives: dirs}
}

func TestRouteForDirective(t *testing.T) {
	m := planMethod("Get",
		[]*types.Var{param("id", types.Typ[types.String])},
		[]*types.Var{errResult()},
		introspect.Directive{Name: "route", Args: []string{"get", "/pets/{id}"}})

	r, err := RouteFor(m)
	require.NoError(t, err)
	assert.Equal(t, "GET", r.Method)
	assert.Equal(t, "/pets/{id}", r.Path)
	assert.Equal(t, []string{"id"}, r.PathParams)
}

func TestRouteForDirectiveArity(t *testing.T) {
	m := planMethod("Get", nil, []*types.Var{errResult()},
		introspect.Directive{Name: "route", Args: []string{"/pets"}})

	_, err := RouteFor(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restgen:route wants METHOD /path")
}

func TestRouteForDefaults(t *testing.T) {
	// No directive, mutating shape: POST /<lowercase name>.
	create := planMethod("CreatePet",
		[]*types.Var{param("name", types.Typ[types.String])},
		[]*types.Var{errResult()})
	r, err := RouteFor(create)
	require.NoError(t, err)
	assert.Equal(t, "POST", r.Method)
	assert.Equal(t, "/createpet", r.Path)

	// Getter shape defaults to GET.
	count := planMethod("Count", nil,
		[]*types.Var{param("", types.Typ[types.Int]), errResult()})
	r, err = RouteFor(count)
	require.NoError(t, err)
	assert.Equal(t, "GET", r.Method)

	// An explicit readonly directive forces GET too.
	list := planMethod("Refresh", nil, []*types.Var{errResult()},
		introspect.Directive{Name: "readonly"})
	r, err = RouteFor(list)
	require.NoError(t, err)
	assert.Equal(t, "GET", r.Method)
}

func TestPlanMethodBindsPathQueryAndBody(t *testing.T) {
	m := planMethod("Update",
		[]*types.Var{
			param("ctx", ctxType()),
			param("id", types.Typ[types.String]),
			param("name", types.Typ[types.String]),
			param("age", types.Typ[types.Int]),
		},
		[]*types.Var{errResult()},
		introspect.Directive{Name: "route", Args: []string{"PUT", "/pets/{id}"}})

	plan, err := PlanMethod(m, nil)
	require.NoError(t, err)
	assert.True(t, plan.HasCtx)
	assert.True(t, plan.HasError)
	assert.Nil(t, plan.Result)

	require.Len(t, plan.PathParams, 1)
	assert.Equal(t, "id", plan.PathParams[0].Name)
	assert.Empty(t, plan.QueryParams)
	require.Len(t, plan.BodyParams, 2)
	assert.Equal(t, "name", plan.BodyParams[0].Name)
	assert.Equal(t, "age", plan.BodyParams[1].Name)
}

func TestPlanMethodBodylessVerbUsesQuery(t *testing.T) {
	m := planMethod("List",
		[]*types.Var{param("ctx", ctxType()), param("limit", types.Typ[types.Int])},
		[]*types.Var{param("", types.NewSlice(types.Typ[types.String])), errResult()},
		introspect.Directive{Name: "route", Args: []string{"GET", "/pets"}})

	plan, err := PlanMethod(m, nil)
	require.NoError(t, err)
	require.Len(t, plan.QueryParams, 1)
	assert.Equal(t, "limit", plan.QueryParams[0].Name)
	assert.Empty(t, plan.BodyParams)
	assert.Equal(t, "[]string", plan.ResultStr)
}

func TestPlanMethodUnmatchedPathParam(t *testing.T) {
	m := planMethod("Get",
		[]*types.Var{param("petID", types.Typ[types.String])},
		[]*types.Var{errResult()},
		introspect.Directive{Name: "route", Args: []string{"GET", "/pets/{id}"}})

	_, err := PlanMethod(m, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path parameter {id} has no matching argument")
}

func TestPlanMethodRejectsMultipleValues(t *testing.T) {
	m := planMethod("Pair", nil,
		[]*types.Var{
			param("", types.Typ[types.String]),
			param("", types.Typ[types.Int]),
			errResult(),
		})

	_, err := PlanMethod(m, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported result shape")
}

func TestPlanMethodNoError(t *testing.T) {
	m := planMethod("Version", nil, []*types.Var{param("", types.Typ[types.String])})

	plan, err := PlanMethod(m, nil)
	require.NoError(t, err)
	assert.False(t, plan.HasError)
	assert.Equal(t, "string", plan.ResultStr)
}

func TestZeroValue(t *testing.T) {
	named := types.NewNamed(types.NewTypeName(token.NoPos, planPkg, "Pet", nil),
		types.NewStruct(nil, nil), nil)

	assert.Equal(t, "false", ZeroValue(types.Typ[types.Bool], nil))
	assert.Equal(t, "0", ZeroValue(types.Typ[types.Float64], nil))
	assert.Equal(t, `""`, ZeroValue(types.Typ[types.String], nil))
	assert.Equal(t, "nil", ZeroValue(types.NewPointer(named), nil))
	assert.Equal(t, "nil", ZeroValue(types.NewSlice(types.Typ[types.Int]), nil))
	assert.Equal(t, "api.Pet{}", ZeroValue(named, (types.Qualifier)(func(p *types.Package) string { return p.Name() })))
}
