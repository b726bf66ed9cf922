package introspect

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
)

const directivePrefix = "//restgen:"

// Directive is a single //restgen: comment directive, split into its name
// and whitespace-separated arguments, e.g. "route" ["GET", "/pets/{id}"].
type Directive struct {
	Name string
	Args []string
}

// ParseDirectives extracts //restgen: directives from a comment group.
// Non-directive comment lines are ignored.
func ParseDirectives(doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}
	var dirs []Directive
	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		dirs = append(dirs, Directive{Name: fields[0], Args: fields[1:]})
	}
	return dirs
}

// FindInterfaceAfterGenerateDirective finds the interface type declared
// immediately after a go:generate directive naming the given generator.
func FindInterfaceAfterGenerateDirective(dir, filename, generatorName string) (string, error) {
	fset := token.NewFileSet()
	fullPath := filepath.Join(dir, filename)
	f, err := parser.ParseFile(fset, fullPath, nil, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing file: %w", err)
	}
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE || genDecl.Doc == nil {
			continue
		}
		for _, comment := range genDecl.Doc.List {
			if strings.Contains(comment.Text, "go:generate") && strings.Contains(comment.Text, generatorName) {
				for _, spec := range genDecl.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if _, ok := typeSpec.Type.(*ast.InterfaceType); ok {
						return typeSpec.Name.Name, nil
					}
				}
			}
		}
	}
	return "", fmt.Errorf("no interface type found after go:generate %s directive", generatorName)
}

// FindInterfaceAfterLine finds the interface type declared immediately after
// the given line number. Used with the GOLINE environment variable set by
// go generate.
func FindInterfaceAfterLine(filename string, lineNum int) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing file: %w", err)
	}
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			pos := fset.Position(typeSpec.Pos())
			if pos.Line > lineNum {
				if _, ok := typeSpec.Type.(*ast.InterfaceType); ok {
					return typeSpec.Name.Name, nil
				}
			}
		}
	}
	return "", fmt.Errorf("no interface type found after line %d", lineNum)
}
