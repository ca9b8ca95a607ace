package elemattr

import (
	"fmt"
	"reflect"

	"github.com/pthm/elemattr/lib/names"
)

// Component is the base type embedded by custom-element component structs.
//
// Embedding Component opts a struct into attribute binding: declarations
// registered via Define are applied when the instance is mounted onto an
// Element, installing a live accessor per declared property. The embedding
// pattern promotes Get, Set, and the introspection methods directly onto
// the user's component type.
//
// Example:
//
//	type Counter struct {
//	    elemattr.Component
//	}
//
//	func init() {
//	    elemattr.Define[Counter](
//	        elemattr.Attr("count", elemattr.Number, 0),
//	    )
//	}
//
// A bound property has no backing field. Reads and writes go through the
// kind's coercion codec straight to the element's attribute store, so the
// property and the attribute can never disagree.
type Component struct {
	el    *Element
	props map[string]*boundProp
	order []string
}

// Host is satisfied by any pointer to a struct embedding Component.
// It is how Mount and the typed accessors reach the embedded base.
type Host interface {
	component() *Component
}

func (c *Component) component() *Component { return c }

// Mounter is implemented by components that need mount-time initialization
// of their own. OnMount runs after the binder has installed all accessors,
// so it may read and write bound properties freely.
type Mounter interface {
	OnMount(el *Element) error
}

// Element returns the element this component is mounted on, or nil before
// mounting.
func (c *Component) Element() *Element {
	return c.el
}

// Mounted reports whether accessors have been installed.
func (c *Component) Mounted() bool {
	return c.el != nil
}

// Properties returns the bound property identifiers in installation order.
func (c *Component) Properties() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// AttributeName returns the normalized attribute name backing a bound
// property.
func (c *Component) AttributeName(name string) (string, error) {
	p, err := c.prop(name)
	if err != nil {
		return "", err
	}
	return p.attr, nil
}

// KindOf returns the declared kind of a bound property.
func (c *Component) KindOf(name string) (Kind, error) {
	p, err := c.prop(name)
	if err != nil {
		return KindInvalid, err
	}
	return p.decl.kind, nil
}

// Get reads a bound property through its coercion codec (and any author
// accessor hook). The value's dynamic type follows the declared kind:
// float64, bool, string, []any or map[string]any.
func (c *Component) Get(name string) (any, error) {
	p, err := c.prop(name)
	if err != nil {
		return nil, err
	}
	return p.get()
}

// Set writes a bound property through its coercion codec (and any author
// accessor hook), reflecting the value into the backing attribute.
func (c *Component) Set(name string, v any) error {
	p, err := c.prop(name)
	if err != nil {
		return err
	}
	return p.set(v)
}

func (c *Component) prop(name string) (*boundProp, error) {
	if c.el == nil {
		return nil, fmt.Errorf("%w: property %q", ErrNotMounted, name)
	}
	p, ok := c.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotDeclared, name)
	}
	return p, nil
}

// GetAs reads a bound property with its static type.
//
// T must match the kind's value type (float64 for Number, bool for Boolean,
// string for String, []any for Array, map[string]any for Object):
//
//	count, err := elemattr.GetAs[float64](c, "count")
func GetAs[T any](comp Host, name string) (T, error) {
	var zero T
	v, err := comp.component().Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: property %q reads as %T, not %T", ErrKindMismatch, name, v, zero)
	}
	return typed, nil
}

// boundProp is the live accessor pair installed for one declaration. It owns
// no state beyond its wiring: the element's attribute is the only storage.
type boundProp struct {
	decl *Declaration
	attr string
	cd   codec
	el   *Element
}

func (p *boundProp) get() (any, error) {
	next := func() (any, error) { return p.cd.decode(p.el, p.attr) }
	if p.decl.getHook != nil {
		return p.decl.getHook(next)
	}
	return next()
}

func (p *boundProp) set(v any) error {
	next := func(v any) error { return p.cd.encode(p.el, p.attr, v) }
	if p.decl.setHook != nil {
		return p.decl.setHook(v, next)
	}
	return next(v)
}

// Mount binds a component instance onto an element, exactly once.
//
// Declarations for the concrete type (embedded types first, then the type's
// own) are applied in order: the property identifier is normalized to its
// attribute name, the kind's codec selected, and the accessor installed. A
// later declaration of the same identifier replaces the earlier accessor -
// this is how an outer type redeclares over an embedded one.
//
// After installation, each property whose attribute is absent from the
// element - and whose identifier was not already installed earlier in this
// same mount - has its declared default pushed through the new setter, which
// reflects the default into the attribute immediately. An attribute supplied
// on the element beforehand always wins over the declared default. A Boolean
// default of false produces no attribute.
//
// When every accessor is in place, control passes to the instance's own
// OnMount hook if it implements Mounter, preserving lifecycle composition:
// the binder always runs first.
func Mount(comp Host, el *Element) error {
	c := comp.component()
	if c.el != nil {
		return fmt.Errorf("elemattr: component already mounted on <%s>", c.el.Tag())
	}
	t := concreteType(comp)
	decls := declarationsFor(t)
	if len(decls) == 0 {
		return fmt.Errorf("%w: %s has no attribute declarations (missing Define)", ErrNotDeclared, t)
	}

	c.el = el
	c.props = make(map[string]*boundProp, len(decls))

	// Misconfiguration is fatal: a failed mount leaves no partial bindings
	// and no attributes this mount reflected onto the element.
	var pushed []string
	unwind := func(err error) error {
		for _, attr := range pushed {
			el.RemoveAttribute(attr)
		}
		c.el = nil
		c.props = nil
		c.order = nil
		return err
	}

	for _, d := range decls {
		attr, err := names.Kebab(d.name)
		if err != nil {
			return unwind(fmt.Errorf("%w: property %q", ErrNoSeparator, d.name))
		}
		cd, ok := codecFor(d.kind)
		if !ok {
			return unwind(fmt.Errorf("%w: property %q", ErrUnsupportedKind, d.name))
		}

		_, reinstalled := c.props[d.name]
		p := &boundProp{decl: d, attr: attr, cd: cd, el: el}
		c.props[d.name] = p
		if !reinstalled {
			c.order = append(c.order, d.name)
		}

		// Default push: skipped when the attribute was authored on the
		// element, and when an earlier pass of this mount already
		// installed the identifier.
		if el.HasAttribute(attr) || reinstalled {
			continue
		}
		if d.getHook != nil {
			// Author getter observes the reflect-to-attribute check once.
			if _, err := p.get(); err != nil {
				return unwind(fmt.Errorf("elemattr: property %q: %w", d.name, err))
			}
		}
		pushed = append(pushed, attr)
		if err := p.set(d.initial); err != nil {
			return unwind(fmt.Errorf("elemattr: property %q: %w", d.name, err))
		}
	}

	if m, ok := comp.(Mounter); ok {
		return m.OnMount(el)
	}
	return nil
}

func concreteType(comp Host) reflect.Type {
	t := reflect.TypeOf(comp)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
