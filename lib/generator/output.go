package generator

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// generateComponent generates the *_attrs.go file for a component.
func (g *Generator) generateComponent(pkgPath, pkgName string, comp *ComponentInfo) error {
	// Determine output filename
	baseName := strings.TrimSuffix(filepath.Base(comp.SourceFile), ".go")
	outputFile := filepath.Join(pkgPath, baseName+"_attrs.go")

	fmt.Printf("generating %s\n", outputFile)

	if g.opts.DryRun {
		return nil
	}

	// Generate the code
	code, err := g.renderTemplate(pkgName, comp)
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}

	// Format the code
	formatted, err := format.Source(code)
	if err != nil {
		// Write unformatted for debugging
		if writeErr := os.WriteFile(outputFile+".unformatted", code, 0644); writeErr == nil {
			fmt.Printf("  wrote unformatted code to %s.unformatted for debugging\n", outputFile)
		}
		return fmt.Errorf("format source: %w", err)
	}

	// Write the file
	return os.WriteFile(outputFile, formatted, 0644)
}

// renderTemplate renders the generated code template.
func (g *Generator) renderTemplate(pkgName string, comp *ComponentInfo) ([]byte, error) {
	tmpl, err := template.New("attrs").Parse(attrsTemplate)
	if err != nil {
		return nil, err
	}

	data := struct {
		Package   string
		Component *ComponentInfo
	}{
		Package:   pkgName,
		Component: comp,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// attrsTemplate emits attribute-name constants and typed accessors per
// declaration. The setters call the promoted Component.Set; the getters go
// through GetAs so a kind drift between declaration and generated code
// surfaces as ErrKindMismatch rather than a silent wrong read.
const attrsTemplate = `// Code generated by elemattr. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/pthm/elemattr"
)

{{$comp := .Component}}
// Attribute names bound by {{$comp.TypeName}}.
const (
{{- range $comp.Decls}}
	{{$comp.TypeName}}Attr{{.Accessor}} = "{{.Attr}}"
{{- end}}
)

{{range $comp.Decls}}
// {{.Accessor}} reads the {{.Name}} property ({{.Attr}} attribute).
func (c *{{$comp.TypeName}}) {{.Accessor}}() ({{.GoType}}, error) {
	return elemattr.GetAs[{{.GoType}}](c, "{{.Name}}")
}

// Set{{.Accessor}} writes the {{.Name}} property ({{.Attr}} attribute).
func (c *{{$comp.TypeName}}) Set{{.Accessor}}(v {{.GoType}}) error {
	return c.Set("{{.Name}}", v)
}
{{end}}
`
