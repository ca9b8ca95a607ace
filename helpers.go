package elemattr

import (
	"context"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// Renderer is implemented by components that produce their own inner HTML.
// Render receives the mount context's element implicitly through the
// component's bound properties; it should read properties and produce
// markup without side effects.
type Renderer interface {
	Render(ctx context.Context) templ.Component
}

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// Attrs returns the element's live attributes as templ.Attributes, in
// attribute order, for spreading into a template. Attributes with empty
// text (boolean attributes) become bare attributes:
//
//	<div { elemattr.Attrs(el)... }>
func Attrs(el *Element) templ.Attributes {
	attrs := templ.Attributes{}
	for _, name := range el.Attributes() {
		text, _ := el.GetAttribute(name)
		if text == "" {
			attrs[name] = true
		} else {
			attrs[name] = text
		}
	}
	return attrs
}

// HostTag renders the element as its host tag: the start tag carries the
// element's live attributes in order, children render inside, then the
// closing tag. Because bound properties write straight to the attribute
// store, the rendered tag always reflects current property values.
func HostTag(el *Element, children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<"+el.Tag()); err != nil {
			return err
		}
		for _, name := range el.Attributes() {
			text, _ := el.GetAttribute(name)
			var err error
			if text == "" {
				_, err = io.WriteString(w, " "+name)
			} else {
				_, err = io.WriteString(w, ` `+name+`="`+html.EscapeString(text)+`"`)
			}
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+el.Tag()+">")
		return err
	})
}

// RenderHost renders a mounted component as its full host element. If the
// component implements Renderer its output becomes the element's children;
// otherwise the element renders empty.
func RenderHost(ctx context.Context, comp Host) templ.Component {
	el := comp.component().Element()
	if el == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return ErrNotMounted
		})
	}
	var children templ.Component
	if r, ok := comp.(Renderer); ok {
		children = r.Render(ctx)
	}
	return HostTag(el, children)
}
