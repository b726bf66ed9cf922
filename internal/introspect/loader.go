package introspect

import (
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedSyntax |
	packages.NeedImports |
	packages.NeedDeps

// Loader loads Go packages and extracts interface models for code
// generation. Loaded packages are cached by pattern.
type Loader struct {
	dir   string
	cache map[string]*packages.Package
}

// NewLoader creates a Loader rooted at dir. An empty dir means the current
// working directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir, cache: make(map[string]*packages.Package)}
}

func (l *Loader) load(pattern string) (*packages.Package, error) {
	if pkg, ok := l.cache[pattern]; ok {
		return pkg, nil
	}
	cfg := &packages.Config{Mode: loadMode, Dir: l.dir}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading package %s: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %s", pattern)
	}
	pkg := pkgs[0]
	var errs []string
	for _, e := range pkg.Errors {
		errs = append(errs, e.Msg)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package %s has errors:\n  %s", pkg.PkgPath, strings.Join(errs, "\n  "))
	}
	l.cache[pattern] = pkg
	return pkg, nil
}

// Interface describes a named interface type and its methods.
type Interface struct {
	Name    string
	Pkg     *types.Package
	Named   *types.Named
	Iface   *types.Interface
	Methods []*Method

	// SourceFile is the base name of the file declaring the interface,
	// empty when the declaration could not be located in the syntax trees.
	SourceFile string
}

// Method is a single method of a loaded interface, joined with any
// //restgen: directives from its doc comment.
type Method struct {
	Name       string
	Sig        *types.Signature
	Directives []Directive
}

// Directive returns the first directive with the given name.
func (m *Method) Directive(name string) (Directive, bool) {
	for _, d := range m.Directives {
		if d.Name == name {
			return d, true
		}
	}
	return Directive{}, false
}

// DirectiveNames returns the names of all directives on the method.
func (m *Method) DirectiveNames() []string {
	names := make([]string, len(m.Directives))
	for i, d := range m.Directives {
		names[i] = d.Name
	}
	return names
}

// LoadInterface loads the package matched by pattern and extracts the named
// interface from its scope.
func (l *Loader) LoadInterface(pattern, name string) (*Interface, error) {
	pkg, err := l.load(pattern)
	if err != nil {
		return nil, err
	}
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", name, pkg.PkgPath)
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s is not a type in package %s", name, pkg.PkgPath)
	}
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("type %s is not an interface", name)
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("type %s is not an interface", name)
	}
	docs, srcFile := interfaceDocs(pkg, name)
	out := &Interface{
		Name:       name,
		Pkg:        pkg.Types,
		Named:      named,
		Iface:      iface,
		SourceFile: srcFile,
	}
	for i := 0; i < iface.NumMethods(); i++ {
		fn := iface.Method(i)
		m := &Method{Name: fn.Name(), Sig: fn.Type().(*types.Signature)}
		if doc, ok := docs[fn.Name()]; ok {
			m.Directives = ParseDirectives(doc)
		}
		out.Methods = append(out.Methods, m)
	}
	return out, nil
}

// interfaceDocs locates the interface declaration in the package syntax and
// returns each method's doc comment group plus the declaring file name.
func interfaceDocs(pkg *packages.Package, name string) (map[string]*ast.CommentGroup, string) {
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != name {
					continue
				}
				it, ok := ts.Type.(*ast.InterfaceType)
				if !ok {
					continue
				}
				docs := make(map[string]*ast.CommentGroup)
				for _, field := range it.Methods.List {
					if len(field.Names) == 0 || field.Doc == nil {
						continue
					}
					docs[field.Names[0].Name] = field.Doc
				}
				file := pkg.Fset.Position(ts.Pos()).Filename
				return docs, filepath.Base(file)
			}
		}
	}
	return nil, ""
}
