package client

import (
	"go/format"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restgen/internal/codegen"
	"restgen/internal/fragment"
	"restgen/internal/introspect"
)

var testPkg = types.NewPackage("example.com/api", "api")

func ctxType() types.Type {
	pkg := types.NewPackage("context", "context")
	iface := types.NewInterfaceType(nil, nil)
	iface.Complete()
	return types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Context", nil), iface, nil)
}

func mustPlan(t *testing.T, name string, params, results []*types.Var, dirs ...introspect.Directive) *codegen.MethodPlan {
	t.Helper()
	sig := types.NewSignatureType(nil, nil, nil, types.NewTuple(params...), types.NewTuple(results...), false)
	m := &introspect.Method{Name: name, Sig: sig, Directives: dirs}
	plan, err := codegen.PlanMethod(m, nil)
	require.NoError(t, err)
	return plan
}

func errVar() *types.Var {
	return types.NewParam(token.NoPos, testPkg, "", types.Universe.Lookup("error").Type())
}

// requireCompilesAsMethod wraps the rendered method in a minimal file and
// checks it is syntactically valid Go.
func requireCompilesAsMethod(t *testing.T, rendered string) {
	t.Helper()
	src := "package out\n\ntype PetClient struct{ baseURL string }\n\n" + rendered
	_, err := format.Source([]byte(src))
	require.NoError(t, err, "generated method does not parse:\n%s", rendered)
}

func TestMethodBodyGetWithPathParam(t *testing.T) {
	plan := mustPlan(t, "Get",
		[]*types.Var{
			types.NewParam(token.NoPos, testPkg, "ctx", ctxType()),
			types.NewParam(token.NoPos, testPkg, "id", types.Typ[types.String]),
		},
		[]*types.Var{types.NewParam(token.NoPos, testPkg, "", types.Typ[types.String]), errVar()},
		introspect.Directive{Name: "route", Args: []string{"GET", "/pets/{id}"}})

	body, err := methodBody(plan, nil)
	require.NoError(t, err)
	assert.Contains(t, body, `u := c.baseURL + "/pets/" + url.PathEscape(id)`)
	assert.Contains(t, body, "http.NewRequestWithContext(ctx, http.MethodGet, u, nil)")
	assert.Contains(t, body, "var out string")
	assert.Contains(t, body, "return out, nil")
	assert.NotContains(t, body, "json.Marshal")

	spec := fragment.Clone(plan.Method.Name, plan.Method.Sig, nil, plan.Attrs, body).
		WithRecv("c *PetClient")
	requireCompilesAsMethod(t, spec.Render())
}

func TestMethodBodyPostWithBody(t *testing.T) {
	plan := mustPlan(t, "Create",
		[]*types.Var{
			types.NewParam(token.NoPos, testPkg, "ctx", ctxType()),
			types.NewParam(token.NoPos, testPkg, "name", types.Typ[types.String]),
			types.NewParam(token.NoPos, testPkg, "age", types.Typ[types.Int]),
		},
		[]*types.Var{errVar()})

	body, err := methodBody(plan, nil)
	require.NoError(t, err)
	// Multiple body params marshal as a keyed object.
	assert.Contains(t, body, "json.Marshal(map[string]any{")
	assert.Contains(t, body, `"name": name,`)
	assert.Contains(t, body, "bytes.NewReader(payload)")
	assert.Contains(t, body, `req.Header.Set("Content-Type", "application/json")`)
	assert.Contains(t, body, "return nil")
}

func TestMethodBodyQueryParams(t *testing.T) {
	plan := mustPlan(t, "List",
		[]*types.Var{
			types.NewParam(token.NoPos, testPkg, "limit", types.Typ[types.Int]),
			types.NewParam(token.NoPos, testPkg, "tags", types.NewSlice(types.Typ[types.String])),
		},
		[]*types.Var{types.NewParam(token.NoPos, testPkg, "", types.NewSlice(types.Typ[types.String])), errVar()},
		introspect.Directive{Name: "route", Args: []string{"GET", "/pets"}})

	body, err := methodBody(plan, nil)
	require.NoError(t, err)
	assert.Contains(t, body, `q.Set("limit", fmt.Sprint(limit))`)
	assert.Contains(t, body, "for _, v := range tags {")
	assert.Contains(t, body, `q.Add("tags", fmt.Sprint(v))`)
	// Bare http.NewRequest without a context parameter.
	assert.Contains(t, body, "req, err := http.NewRequest(http.MethodGet, u, nil)")
}

func TestMethodBodyNoErrorPanics(t *testing.T) {
	plan := mustPlan(t, "Version", nil,
		[]*types.Var{types.NewParam(token.NoPos, testPkg, "", types.Typ[types.String])})

	body, err := methodBody(plan, nil)
	require.NoError(t, err)
	assert.Contains(t, body, "panic(")
	assert.Contains(t, body, "return out")
	assert.NotContains(t, body, "return out, nil")
}

func TestMethodBodyVariadicBody(t *testing.T) {
	sig := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(types.NewParam(token.NoPos, testPkg, "ids", types.NewSlice(types.Typ[types.String]))),
		types.NewTuple(errVar()), true)
	m := &introspect.Method{Name: "Append", Sig: sig}
	plan, err := codegen.PlanMethod(m, nil)
	require.NoError(t, err)

	body, err := methodBody(plan, nil)
	require.NoError(t, err)
	// Inside the generated method ids is already the slice; it marshals as
	// a JSON array directly.
	assert.Contains(t, body, "payload, err := json.Marshal(ids)")

	spec := fragment.Clone(plan.Method.Name, plan.Method.Sig, nil, plan.Attrs, body).
		WithRecv("c *PetClient")
	assert.Contains(t, spec.Render(), "func (c *PetClient) Append(ids ...string) error {")
	requireCompilesAsMethod(t, spec.Render())
}

func TestPathExpr(t *testing.T) {
	plan := mustPlan(t, "Move",
		[]*types.Var{
			types.NewParam(token.NoPos, testPkg, "from", types.Typ[types.String]),
			types.NewParam(token.NoPos, testPkg, "to", types.Typ[types.Int]),
		},
		[]*types.Var{errVar()},
		introspect.Directive{Name: "route", Args: []string{"POST", "/pets/{from}/move/{to}"}})

	expr := pathExpr(plan)
	assert.Equal(t, `"/pets/" + url.PathEscape(from) + "/move/" + url.PathEscape(fmt.Sprint(to))`, expr)
}

func TestHTTPMethodConst(t *testing.T) {
	assert.Equal(t, "http.MethodGet", httpMethodConst("GET"))
	assert.Equal(t, "http.MethodDelete", httpMethodConst("DELETE"))
	assert.Equal(t, `"PURGE"`, httpMethodConst("PURGE"))
}

func TestIsSliceLike(t *testing.T) {
	assert.True(t, isSliceLike(types.NewSlice(types.Typ[types.String])))
	assert.True(t, isSliceLike(types.NewSlice(types.Typ[types.Int])))
	// []byte marshals as a unit, not element by element.
	assert.False(t, isSliceLike(types.NewSlice(types.Typ[types.Byte])))
	assert.False(t, isSliceLike(types.Typ[types.String]))
}
