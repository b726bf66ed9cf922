// Package server implements the HTTP server binding code generation subtool.
package server

import (
	"fmt"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"restgen/internal/codegen"
	"restgen/internal/introspect"
)

// Subtool generates a Register function wiring an interface implementation
// into an *http.ServeMux.
type Subtool struct{}

// Name returns the subtool name.
func (s *Subtool) Name() string { return "server" }

// Description returns the subtool description.
func (s *Subtool) Description() string {
	return "Generate http.ServeMux handler bindings for an interface"
}

// Run executes the server code generation.
func (s *Subtool) Run(cfg codegen.GeneratorConfig) error {
	iface, err := cfg.Loader.LoadInterface(cfg.SourcePattern, cfg.InterfaceName)
	if err != nil {
		return err
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

	// Handler bodies only ever spell out body parameter types; importing the
	// full signature closure would leave unused imports behind.
	syms := introspect.NewSymbolSet()
	for _, plan := range plans {
		for _, bp := range plan.BodyParams {
			for _, obj := range introspect.Collect(bp.Type).TypeNames() {
				syms.Add(obj)
			}
		}
	}
	imports := introspect.NewImportSet()
	imports.Add("net/http")
	for i := 0; i < syms.Len(); i++ {
		if pkg := syms.At(i).Pkg(); pkg != nil && pkg.Path() != iface.Pkg.Path() {
			imports.AddNamed(pkg.Path(), pkg.Name())
		}
	}

	handlers := make([]string, 0, len(plans))
	needJSON, needStrconv := false, false
	for _, plan := range plans {
		h, usesJSON, usesStrconv, err := handlerFor(plan)
		if err != nil {
			return err
		}
		needJSON = needJSON || usesJSON
		needStrconv = needStrconv || usesStrconv
		handlers = append(handlers, h)
	}
	if needJSON {
		imports.Add("encoding/json")
	}
	if needStrconv {
		imports.Add("strconv")
	}

	outputPkg := cfg.OutputPkg
	if outputPkg == "" {
		outputPkg = iface.Pkg.Name()
	}
	outputFile := filepath.Join(cfg.OutputDir, strings.ToLower(iface.Name)+"_server.go")
	data := struct {
		Package   string
		Interface string
		Imports   []string
		Handlers  []string
	}{
		Package:   outputPkg,
		Interface: iface.Name,
		Imports:   imports.Specs(),
		Handlers:  handlers,
	}
	gen := codegen.NewTemplateGenerator(nil)
	return gen.GenerateFile(outputFile, serverTemplate, data)
}

// handlerFor renders one mux.HandleFunc call for a method plan. It reports
// whether the handler body uses encoding/json and strconv.
func handlerFor(plan *codegen.MethodPlan) (handler string, usesJSON, usesStrconv bool, err error) {
	m := plan.Method
	var b strings.Builder
	pattern := plan.Route.Method + " " + plan.Route.Path
	b.WriteString("mux.HandleFunc(" + strconv.Quote(pattern) + ", func(w http.ResponseWriter, r *http.Request) {\n")

	argExpr := make(map[string]string)
	for _, pp := range plan.PathParams {
		conv, uses, err := convert(&b, pp, "r.PathValue("+strconv.Quote(pp.Name)+")")
		if err != nil {
			return "", false, false, fmt.Errorf("method %s: path parameter %s: %w", m.Name, pp.Name, err)
		}
		usesStrconv = usesStrconv || uses
		argExpr[pp.Name] = conv
	}
	for _, qp := range plan.QueryParams {
		if qp.Variadic || isStringSlice(qp.Type) {
			if !isStringSlice(qp.Type) {
				return "", false, false, fmt.Errorf("method %s: query parameter %s: only string slices are supported", m.Name, qp.Name)
			}
			b.WriteString(qp.Name + " := r.URL.Query()[" + strconv.Quote(qp.Name) + "]\n")
			argExpr[qp.Name] = qp.Name
			continue
		}
		conv, uses, err := convert(&b, qp, "r.URL.Query().Get("+strconv.Quote(qp.Name)+")")
		if err != nil {
			return "", false, false, fmt.Errorf("method %s: query parameter %s: %w", m.Name, qp.Name, err)
		}
		usesStrconv = usesStrconv || uses
		argExpr[qp.Name] = conv
	}
	switch len(plan.BodyParams) {
	case 0:
	case 1:
		bp := plan.BodyParams[0]
		b.WriteString("var " + bp.Name + " " + declaredType(bp) + "\n")
		b.WriteString("if err := json.NewDecoder(r.Body).Decode(&" + bp.Name + "); err != nil {\n")
		b.WriteString("http.Error(w, err.Error(), http.StatusBadRequest)\nreturn\n}\n")
		argExpr[bp.Name] = bp.Name
		usesJSON = true
	default:
		b.WriteString("var in struct {\n")
		for _, bp := range plan.BodyParams {
			b.WriteString(upperFirst(bp.Name) + " " + declaredType(bp) + " `json:" + strconv.Quote(bp.Name) + "`\n")
		}
		b.WriteString("}\n")
		b.WriteString("if err := json.NewDecoder(r.Body).Decode(&in); err != nil {\n")
		b.WriteString("http.Error(w, err.Error(), http.StatusBadRequest)\nreturn\n}\n")
		for _, bp := range plan.BodyParams {
			argExpr[bp.Name] = "in." + upperFirst(bp.Name)
		}
		usesJSON = true
	}

	// Call arguments in declared order.
	var args []string
	for i := 0; i < plan.Params.Len(); i++ {
		p := plan.Params.At(i)
		if i == 0 && plan.HasCtx {
			args = append(args, "r.Context()")
			continue
		}
		expr := argExpr[p.Name]
		if p.Variadic {
			expr += "..."
		}
		args = append(args, expr)
	}
	call := "impl." + m.Name + "(" + strings.Join(args, ", ") + ")"

	switch {
	case plan.Result != nil && plan.HasError:
		b.WriteString("out, err := " + call + "\n")
		b.WriteString("if err != nil {\nhttp.Error(w, err.Error(), http.StatusInternalServerError)\nreturn\n}\n")
		b.WriteString(encodeResponse())
		usesJSON = true
	case plan.Result != nil:
		b.WriteString("out := " + call + "\n")
		b.WriteString(encodeResponse())
		usesJSON = true
	case plan.HasError:
		b.WriteString("if err := " + call + "; err != nil {\nhttp.Error(w, err.Error(), http.StatusInternalServerError)\nreturn\n}\n")
		b.WriteString("w.WriteHeader(http.StatusNoContent)\n")
	default:
		b.WriteString(call + "\n")
		b.WriteString("w.WriteHeader(http.StatusNoContent)\n")
	}
	b.WriteString("})\n")
	return b.String(), usesJSON, usesStrconv, nil
}

// declaredType is the type a body parameter is declared with in the handler.
// Variadic parameters carry the element type in TypeStr; the wire shape and
// the forwarded value are the full slice.
func declaredType(bp codegen.BoundParam) string {
	if bp.Variadic {
		return "[]" + bp.TypeStr
	}
	return bp.TypeStr
}

func encodeResponse() string {
	return "w.Header().Set(\"Content-Type\", \"application/json\")\n_ = json.NewEncoder(w).Encode(out)\n"
}

// convert emits statements decoding a raw string expression into a variable
// named after the parameter, with a 400 response on parse failure. It
// returns the expression to pass to the implementation and whether strconv
// was used.
func convert(b *strings.Builder, bp codegen.BoundParam, raw string) (string, bool, error) {
	basic, ok := bp.Type.Underlying().(*types.Basic)
	if !ok {
		return "", false, fmt.Errorf("unsupported type %s", bp.TypeStr)
	}
	fail := "if err != nil {\nhttp.Error(w, " + strconv.Quote("invalid "+bp.Name) + ", http.StatusBadRequest)\nreturn\n}\n"
	tmp := bp.Name + "Val"
	cast := func(expr string) string {
		if bp.TypeStr == basic.Name() {
			return expr
		}
		return bp.TypeStr + "(" + expr + ")"
	}
	switch basic.Kind() {
	case types.String:
		b.WriteString(bp.Name + " := " + cast(raw) + "\n")
		return bp.Name, false, nil
	case types.Bool:
		b.WriteString(tmp + ", err := strconv.ParseBool(" + raw + ")\n" + fail)
	case types.Int:
		b.WriteString(tmp + ", err := strconv.Atoi(" + raw + ")\n" + fail)
	case types.Int8, types.Int16, types.Int32, types.Int64:
		bits := bitSize(basic.Kind())
		b.WriteString(tmp + ", err := strconv.ParseInt(" + raw + ", 10, " + bits + ")\n" + fail)
	case types.Uint, types.Uint8, types.Uint16, types.Uint32, types.Uint64:
		bits := bitSize(basic.Kind())
		b.WriteString(tmp + ", err := strconv.ParseUint(" + raw + ", 10, " + bits + ")\n" + fail)
	case types.Float32, types.Float64:
		bits := bitSize(basic.Kind())
		b.WriteString(tmp + ", err := strconv.ParseFloat(" + raw + ", " + bits + ")\n" + fail)
	default:
		return "", false, fmt.Errorf("unsupported type %s", bp.TypeStr)
	}
	// Parse helpers return widened types, so a conversion is always needed
	// except for plain int and bool.
	switch basic.Kind() {
	case types.Int, types.Bool:
		b.WriteString(bp.Name + " := " + cast(tmp) + "\n")
	default:
		b.WriteString(bp.Name + " := " + bp.TypeStr + "(" + tmp + ")\n")
	}
	return bp.Name, true, nil
}

func bitSize(kind types.BasicKind) string {
	switch kind {
	case types.Int8, types.Uint8:
		return "8"
	case types.Int16, types.Uint16:
		return "16"
	case types.Int32, types.Uint32, types.Float32:
		return "32"
	default:
		return "64"
	}
}

func isStringSlice(t types.Type) bool {
	slice, ok := t.Underlying().(*types.Slice)
	if !ok {
		return false
	}
	basic, ok := slice.Elem().(*types.Basic)
	return ok && basic.Kind() == types.String
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const serverTemplate = `// Code generated by restgen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

// Register{{.Interface}} registers an HTTP handler for every {{.Interface}}
// method on mux.
func Register{{.Interface}}(mux *http.ServeMux, impl {{.Interface}}) {
{{- range .Handlers}}
	{{.}}
{{- end}}
}
`
