// Package stub implements the stub implementation code generation subtool.
package stub

import (
	"path/filepath"
	"strconv"
	"strings"

	"restgen/internal/codegen"
	"restgen/internal/fragment"
	"restgen/internal/introspect"
)

// Subtool generates a do-nothing implementation of an interface: every
// method is a clone of the interface signature with a panicking body.
// Useful as a starting point for handwritten implementations and as a test
// double.
type Subtool struct {
	// TypeName overrides the generated type name. Default: <Interface>Stub.
	TypeName string
}

// Name returns the subtool name.
func (s *Subtool) Name() string { return "stub" }

// Description returns the subtool description.
func (s *Subtool) Description() string {
	return "Generate a panicking stub implementation of an interface"
}

// Run executes the stub code generation.
func (s *Subtool) Run(cfg codegen.GeneratorConfig) error {
	iface, err := cfg.Loader.LoadInterface(cfg.SourcePattern, cfg.InterfaceName)
	if err != nil {
		return err
	}
	typeName := s.TypeName
	if typeName == "" {
		typeName = iface.Name + "Stub"
	}
	qual := introspect.Qualifier(iface.Pkg)

	resolved, err := introspect.ResolveImports(iface.Named)
	if err != nil {
		return err
	}
	imports := resolved.Without(iface.Pkg.Path())

	methods := make([]string, 0, len(iface.Methods))
	for _, m := range iface.Methods {
		attrs := fragment.ExtractAttrs(m.Sig, m.DirectiveNames())
		body := "panic(" + strconv.Quote("restgen: "+m.Name+" not implemented") + ")"
		spec := fragment.Clone(m.Name, m.Sig, qual, attrs, body).WithRecv(typeName)
		methods = append(methods, spec.Render())
	}

	outputPkg := cfg.OutputPkg
	if outputPkg == "" {
		outputPkg = iface.Pkg.Name()
	}
	suffix := "_stub.go"
	if s.TypeName != "" {
		suffix = "_" + strings.ToLower(s.TypeName) + ".go"
	}
	outputFile := filepath.Join(cfg.OutputDir, strings.ToLower(iface.Name)+suffix)
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
	return gen.GenerateFile(outputFile, stubTemplate, data)
}

const stubTemplate = `// Code generated by restgen. DO NOT EDIT.

package {{.Package}}

{{- if .Imports}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{- end}}

// {{.Type}} implements {{.Interface}}; every method panics until replaced.
type {{.Type}} struct{}

var _ {{.Interface}} = {{.Type}}{}

{{range .Methods}}
{{.}}
{{end}}
`
