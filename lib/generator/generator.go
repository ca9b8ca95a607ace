// Package generator produces typed accessor wrappers for declared
// attributes. It scans packages for elemattr.Define registrations and
// writes a *_attrs.go file per component with compile-time-checked
// getters and setters plus attribute-name constants.
package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm/elemattr/lib/names"
)

// Options configures the generator.
type Options struct {
	DryRun bool
}

// Generator generates elemattr accessor code.
type Generator struct {
	opts Options
	fset *token.FileSet
}

// New creates a new generator.
func New(opts Options) *Generator {
	return &Generator{
		opts: opts,
		fset: token.NewFileSet(),
	}
}

// Generate generates code for the given package patterns.
func (g *Generator) Generate(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.generatePackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// Clean removes generated files for the given package patterns.
func (g *Generator) Clean(patterns ...string) error {
	packages, err := g.findPackages(patterns)
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if err := g.cleanPackage(pkg); err != nil {
			return fmt.Errorf("package %s: %w", pkg, err)
		}
	}

	return nil
}

// findPackages resolves package patterns to directory paths.
func (g *Generator) findPackages(patterns []string) ([]string, error) {
	var packages []string

	for _, pattern := range patterns {
		// Handle ./... pattern
		if strings.HasSuffix(pattern, "/...") {
			root := strings.TrimSuffix(pattern, "/...")
			if root == "" {
				root = "."
			}

			err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() {
					return nil
				}
				// Skip hidden directories and vendor
				base := filepath.Base(path)
				if strings.HasPrefix(base, ".") && base != "." || base == "vendor" || base == "testdata" {
					return filepath.SkipDir
				}

				// Check if directory contains Go files
				entries, err := os.ReadDir(path)
				if err != nil {
					return nil
				}
				for _, entry := range entries {
					if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".go") && !strings.HasSuffix(entry.Name(), "_test.go") {
						packages = append(packages, path)
						break
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			// Direct path
			packages = append(packages, pattern)
		}
	}

	return packages, nil
}

// generatePackage generates code for a single package.
func (g *Generator) generatePackage(pkgPath string) error {
	// Parse all Go files in the package
	pkgs, err := parser.ParseDir(g.fset, pkgPath, func(info os.FileInfo) bool {
		name := info.Name()
		// Skip test files and generated files
		return !strings.HasSuffix(name, "_test.go") && !strings.HasSuffix(name, "_attrs.go")
	}, parser.ParseComments)
	if err != nil {
		return err
	}

	for pkgName, pkg := range pkgs {
		components, err := g.findComponents(pkg)
		if err != nil {
			return err
		}

		for _, comp := range components {
			if err := g.generateComponent(pkgPath, pkgName, comp); err != nil {
				return err
			}
		}
	}

	return nil
}

// cleanPackage removes generated files from a package.
func (g *Generator) cleanPackage(pkgPath string) error {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_attrs.go") {
			path := filepath.Join(pkgPath, entry.Name())
			fmt.Printf("removing %s\n", path)
			if !g.opts.DryRun {
				if err := os.Remove(path); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// ComponentInfo holds a component discovered through its Define call.
type ComponentInfo struct {
	SourceFile string
	TypeName   string     // e.g. "Counter"
	Decls      []DeclInfo // Declarations in registration order
}

// DeclInfo is one parsed Attr declaration.
type DeclInfo struct {
	Name     string // Property identifier (e.g. "testArray")
	Attr     string // Derived attribute name (e.g. "test-array")
	Kind     string // Kind selector (e.g. "Array")
	GoType   string // Value type for accessors (e.g. "[]any")
	Accessor string // Exported method base name (e.g. "TestArray")
}

// findComponents finds Define registrations in a package.
func (g *Generator) findComponents(pkg *ast.Package) ([]*ComponentInfo, error) {
	var components []*ComponentInfo

	for filename, file := range pkg.Files {
		var walkErr error
		ast.Inspect(file, func(n ast.Node) bool {
			if walkErr != nil {
				return false
			}
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			typeName, ok := defineTypeArg(call)
			if !ok {
				return true
			}

			comp := &ComponentInfo{
				SourceFile: filename,
				TypeName:   typeName,
			}
			for _, arg := range call.Args {
				decl, ok := parseDeclaration(arg)
				if !ok {
					continue
				}
				attr, err := names.Kebab(decl.Name)
				if err != nil {
					walkErr = fmt.Errorf("%s: attribute %q: %w", filename, decl.Name, err)
					return false
				}
				decl.Attr = attr
				decl.GoType = kindGoType(decl.Kind)
				decl.Accessor = exported(decl.Name)
				comp.Decls = append(comp.Decls, decl)
			}

			if len(comp.Decls) > 0 {
				components = append(components, comp)
			}
			return true
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	return components, nil
}

// defineTypeArg extracts the type argument of an elemattr.Define[T] call.
func defineTypeArg(call *ast.CallExpr) (string, bool) {
	index, ok := call.Fun.(*ast.IndexExpr)
	if !ok {
		return "", false
	}

	switch fun := index.X.(type) {
	case *ast.SelectorExpr:
		// elemattr.Define[T]
		if ident, ok := fun.X.(*ast.Ident); !ok || ident.Name != "elemattr" {
			return "", false
		}
		if fun.Sel.Name != "Define" {
			return "", false
		}
	case *ast.Ident:
		// Define[T] (dot import or same package)
		if fun.Name != "Define" {
			return "", false
		}
	default:
		return "", false
	}

	ident, ok := index.Index.(*ast.Ident)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// parseDeclaration extracts (name, kind) from an Attr call, unwrapping any
// builder chain (e.g. Attr(...).WithAccessor(...)).
func parseDeclaration(expr ast.Expr) (DeclInfo, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return DeclInfo{}, false
	}

	// Unwrap builder methods down to the Attr call.
	for {
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			// Plain Attr(...) via dot import; isAttrCall decides.
			break
		}
		inner, ok := sel.X.(*ast.CallExpr)
		if !ok {
			// Base case: elemattr.Attr(...) reached.
			break
		}
		call = inner
	}

	if !isAttrCall(call) || len(call.Args) < 3 {
		return DeclInfo{}, false
	}

	nameLit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || nameLit.Kind != token.STRING {
		return DeclInfo{}, false
	}

	var kind string
	switch k := call.Args[1].(type) {
	case *ast.SelectorExpr:
		kind = k.Sel.Name
	case *ast.Ident:
		kind = k.Name
	default:
		return DeclInfo{}, false
	}

	return DeclInfo{
		Name: strings.Trim(nameLit.Value, `"`),
		Kind: kind,
	}, true
}

// isAttrCall checks whether call invokes elemattr.Attr (or plain Attr).
func isAttrCall(call *ast.CallExpr) bool {
	switch fun := call.Fun.(type) {
	case *ast.SelectorExpr:
		if ident, ok := fun.X.(*ast.Ident); ok && ident.Name == "elemattr" {
			return fun.Sel.Name == "Attr"
		}
		return false
	case *ast.Ident:
		return fun.Name == "Attr"
	default:
		return false
	}
}

// kindGoType maps a kind selector to the accessor value type.
func kindGoType(kind string) string {
	switch kind {
	case "Number":
		return "float64"
	case "Boolean":
		return "bool"
	case "String":
		return "string"
	case "Array":
		return "[]any"
	case "Object":
		return "map[string]any"
	default:
		return "any"
	}
}

// exported uppercases the identifier's first rune: testArray → TestArray.
func exported(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
