// Package client implements the REST client code generation subtool.
package client

import (
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"restgen/internal/codegen"
	"restgen/internal/fragment"
	"restgen/internal/introspect"
)

// Subtool generates an HTTP client type implementing a source interface.
type Subtool struct {
	// TypeName overrides the generated type name. Default: <Interface>Client.
	TypeName string
}

// Name returns the subtool name.
func (s *Subtool) Name() string { return "client" }

// Description returns the subtool description.
func (s *Subtool) Description() string {
	return "Generate an HTTP client implementing an interface"
}

// Run executes the client code generation.
func (s *Subtool) Run(cfg codegen.GeneratorConfig) error {
	iface, err := cfg.Loader.LoadInterface(cfg.SourcePattern, cfg.InterfaceName)
	if err != nil {
		return err
	}
	typeName := s.TypeName
	if typeName == "" {
		typeName = iface.Name + "Client"
	}
	qual := introspect.Qualifier(iface.Pkg)
	plans := make([]*codegen.MethodPlan, 0, len(iface.Methods))
	for _, m := range iface.Methods {
		plan, err := codegen.PlanMethod(m, qual)
		if err != nil {
			return err
		}
		plans = append(plans, plan)
	}

	resolved, err := introspect.ResolveImports(iface.Named)
	if err != nil {
		return err
	}
	imports := resolved.Without(iface.Pkg.Path())
	imports.Add("net/http")
	imports.Add("strings")
	if len(plans) > 0 {
		imports.Add("fmt")
	}
	for _, plan := range plans {
		if len(plan.PathParams) > 0 || len(plan.QueryParams) > 0 {
			imports.Add("net/url")
		}
		if len(plan.BodyParams) > 0 {
			imports.Add("bytes")
		}
		if len(plan.BodyParams) > 0 || plan.Result != nil {
			imports.Add("encoding/json")
		}
	}

	methods := make([]string, 0, len(plans))
	for _, plan := range plans {
		body, err := methodBody(plan, qual)
		if err != nil {
			return err
		}
		spec := fragment.Clone(plan.Method.Name, plan.Method.Sig, qual, plan.Attrs, body).
			WithRecv("c *" + typeName)
		methods = append(methods, spec.Render())
	}

	outputPkg := cfg.OutputPkg
	if outputPkg == "" {
		outputPkg = iface.Pkg.Name()
	}
	outputFile := filepath.Join(cfg.OutputDir, strings.ToLower(iface.Name)+"_client.go")
	data := struct {
		Package   string
		Interface string
		Type      string
		Imports   []string
		Methods   []string
	}{
		Package:   outputPkg,
		Interface: iface.Name,
		Type:      typeName,
		Imports:   imports.Specs(),
		Methods:   methods,
	}
	gen := codegen.NewTemplateGenerator(nil)
	return gen.GenerateFile(outputFile, clientTemplate, data)
}

// methodBody builds the body text for a single client method.
func methodBody(plan *codegen.MethodPlan, qual types.Qualifier) (string, error) {
	name := plan.Method.Name
	var b strings.Builder
	fail := func(errExpr string) string {
		if !plan.HasError {
			return "panic(" + errExpr + ")"
		}
		if plan.Result != nil {
			return "return " + codegen.ZeroValue(plan.Result, qual) + ", " + errExpr
		}
		return "return " + errExpr
	}

	b.WriteString("u := c.baseURL + " + pathExpr(plan) + "\n")
	if len(plan.QueryParams) > 0 {
		b.WriteString("q := url.Values{}\n")
		for _, qp := range plan.QueryParams {
			key := strconv.Quote(qp.Name)
			if isSliceLike(qp.Type) {
				b.WriteString("for _, v := range " + qp.Name + " {\n")
				b.WriteString("q.Add(" + key + ", fmt.Sprint(v))\n")
				b.WriteString("}\n")
			} else if qp.TypeStr == "string" {
				b.WriteString("q.Set(" + key + ", " + qp.Name + ")\n")
			} else {
				b.WriteString("q.Set(" + key + ", fmt.Sprint(" + qp.Name + "))\n")
			}
		}
		b.WriteString("if len(q) > 0 {\nu += \"?\" + q.Encode()\n}\n")
	}

	bodyArg := "nil"
	if len(plan.BodyParams) > 0 {
		if len(plan.BodyParams) == 1 {
			b.WriteString("payload, err := json.Marshal(" + plan.BodyParams[0].Name + ")\n")
		} else {
			b.WriteString("payload, err := json.Marshal(map[string]any{\n")
			for _, bp := range plan.BodyParams {
				b.WriteString(strconv.Quote(bp.Name) + ": " + bp.Name + ",\n")
			}
			b.WriteString("})\n")
		}
		b.WriteString("if err != nil {\n" + fail(wrapErr(name, plan.HasError)) + "\n}\n")
		bodyArg = "bytes.NewReader(payload)"
	}

	if plan.HasCtx {
		ctxName := plan.Params.At(0).Name
		b.WriteString("req, err := http.NewRequestWithContext(" + ctxName + ", " + httpMethodConst(plan.Route.Method) + ", u, " + bodyArg + ")\n")
	} else {
		b.WriteString("req, err := http.NewRequest(" + httpMethodConst(plan.Route.Method) + ", u, " + bodyArg + ")\n")
	}
	b.WriteString("if err != nil {\n" + fail(wrapErr(name, plan.HasError)) + "\n}\n")
	if len(plan.BodyParams) > 0 {
		b.WriteString("req.Header.Set(\"Content-Type\", \"application/json\")\n")
	}
	b.WriteString("resp, err := c.httpClient.Do(req)\n")
	b.WriteString("if err != nil {\n" + fail(wrapErr(name, plan.HasError)) + "\n}\n")
	b.WriteString("defer resp.Body.Close()\n")
	statusErr := "fmt.Errorf(\"" + name + ": unexpected status %s\", resp.Status)"
	b.WriteString("if resp.StatusCode >= 400 {\n" + fail(statusErr) + "\n}\n")

	if plan.Result != nil {
		b.WriteString("var out " + plan.ResultStr + "\n")
		b.WriteString("if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {\n" + fail(wrapErr(name, plan.HasError)) + "\n}\n")
		if plan.HasError {
			b.WriteString("return out, nil")
		} else {
			b.WriteString("return out")
		}
	} else if plan.HasError {
		b.WriteString("return nil")
	}
	return b.String(), nil
}

// pathExpr renders the route path as a Go string expression with {param}
// segments replaced by escaped argument values.
func pathExpr(plan *codegen.MethodPlan) string {
	path := plan.Route.Path
	if len(plan.PathParams) == 0 {
		return strconv.Quote(path)
	}
	byName := make(map[string]codegen.BoundParam, len(plan.PathParams))
	for _, pp := range plan.PathParams {
		byName[pp.Name] = pp
	}
	var parts []string
	rest := path
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			break
		}
		if open > 0 {
			parts = append(parts, strconv.Quote(rest[:open]))
		}
		name := rest[open+1 : open+end]
		pp := byName[name]
		if pp.TypeStr == "string" {
			parts = append(parts, "url.PathEscape("+name+")")
		} else {
			parts = append(parts, "url.PathEscape(fmt.Sprint("+name+"))")
		}
		rest = rest[open+end+1:]
	}
	if rest != "" {
		parts = append(parts, strconv.Quote(rest))
	}
	return strings.Join(parts, " + ")
}

func wrapErr(method string, hasError bool) string {
	if hasError {
		return "fmt.Errorf(\"" + method + ": %w\", err)"
	}
	return "fmt.Errorf(\"restgen: " + method + ": %w\", err)"
}

func httpMethodConst(verb string) string {
	switch verb {
	case "GET":
		return "http.MethodGet"
	case "POST":
		return "http.MethodPost"
	case "PUT":
		return "http.MethodPut"
	case "PATCH":
		return "http.MethodPatch"
	case "DELETE":
		return "http.MethodDelete"
	case "HEAD":
		return "http.MethodHead"
	default:
		return strconv.Quote(verb)
	}
}

func isSliceLike(t types.Type) bool {
	slice, ok := t.Underlying().(*types.Slice)
	if !ok {
		return false
	}
	basic, ok := slice.Elem().(*types.Basic)
	return !ok || basic.Kind() != types.Byte
}

const clientTemplate = `// Code generated by restgen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

// {{.Type}} is an HTTP client implementing {{.Interface}}.
type {{.Type}} struct {
	baseURL    string
	httpClient *http.Client
}

// New{{.Type}} returns a client for the service at baseURL. A nil
// httpClient falls back to http.DefaultClient.
func New{{.Type}}(baseURL string, httpClient *http.Client) *{{.Type}} {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &{{.Type}}{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

var _ {{.Interface}} = (*{{.Type}})(nil)

{{range .Methods}}
{{.}}
{{end}}
`
