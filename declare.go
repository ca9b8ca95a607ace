package elemattr

import (
	"fmt"
	"reflect"
	"sync"
)

// GetHook wraps the coercion getter of a bound property. The hook receives
// the underlying attribute read as next and must call it (or substitute a
// value) exactly as a hand-written accessor would.
type GetHook func(next func() (any, error)) (any, error)

// SetHook wraps the coercion setter of a bound property. next performs the
// attribute write through the kind's codec.
type SetHook func(v any, next func(any) error) error

// Declaration is one (identifier, default value) pair recorded at definition
// time. The default value doubles as the kind discriminator: its runtime
// shape selects the coercion strategy for the property's whole lifetime.
type Declaration struct {
	name    string
	kind    Kind
	initial any
	getHook GetHook
	setHook SetHook
}

// Attr declares an attribute-bound property.
//
// name is the property identifier as written on the component (camel case,
// untransformed - the dash form is derived at mount time). kind must match
// the shape of initial; a mismatch is a programming error and panics at
// declaration evaluation time, before any instance exists:
//
//	elemattr.Attr("clipX", elemattr.Number, 0)
//	elemattr.Attr("testArray", elemattr.Array, []int{1, 2, 3})
//
// Returns the declaration for optional builder-style configuration.
func Attr(name string, kind Kind, initial any) *Declaration {
	if name == "" {
		panic("elemattr: Attr requires a property name")
	}
	got, err := KindOf(initial)
	if err != nil {
		panic(fmt.Sprintf("elemattr: attribute %q: %v", name, err))
	}
	if got != kind {
		panic(fmt.Sprintf("elemattr: attribute %q declared %s but default value %#v is %s", name, kind, initial, got))
	}
	return &Declaration{name: name, kind: kind, initial: initial}
}

// WithAccessor installs author-defined accessor logic around the property.
//
// The hooks wrap the kind's coercion codec: get runs on every property read,
// set on every write, each observing exactly one underlying attribute
// operation per call. The binder's initial-value push routes through set
// exactly once when the attribute starts out absent. Either hook may be nil
// to keep the plain codec for that direction.
func (d *Declaration) WithAccessor(get GetHook, set SetHook) *Declaration {
	d.getHook = get
	d.setHook = set
	return d
}

// Name returns the declared property identifier.
func (d *Declaration) Name() string {
	return d.name
}

// Kind returns the declared coercion kind.
func (d *Declaration) Kind() Kind {
	return d.kind
}

// Initial returns the declared default value.
func (d *Declaration) Initial() any {
	return d.initial
}

// declarations is the process-wide table of attribute declarations, keyed by
// the concrete component type. It is populated by Define during package
// initialization and read once per instance at mount time. Entries are
// append-only and never deleted; they live as long as the type itself.
type declTable struct {
	mu    sync.RWMutex
	decls map[reflect.Type][]*Declaration
}

var declarations = &declTable{decls: make(map[reflect.Type][]*Declaration)}

// Define registers attribute declarations for a component type.
//
// T must be a struct embedding elemattr.Component; anything else panics,
// since applying the opt-in to a non-component construct is a programming
// error. Declaration order is preserved and is the order accessors are
// installed at mount time. Calling Define again for the same type appends.
//
// Typically invoked from the component package's init func so registration
// completes before any instance can be mounted:
//
//	func init() {
//	    elemattr.Define[Counter](
//	        elemattr.Attr("count", elemattr.Number, 0),
//	        elemattr.Attr("active", elemattr.Boolean, false),
//	    )
//	}
func Define[T any](decls ...*Declaration) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("elemattr: Define requires a struct type, got %s", t))
	}
	if !embedsComponent(t) {
		panic(fmt.Sprintf("elemattr: %s does not embed elemattr.Component", t))
	}
	for _, d := range decls {
		if d == nil {
			panic(fmt.Sprintf("elemattr: Define[%s] given a nil declaration", t))
		}
	}

	declarations.mu.Lock()
	defer declarations.mu.Unlock()
	declarations.decls[t] = append(declarations.decls[t], decls...)
}

// declarationsFor returns the ordered declarations for a concrete component
// type. Declarations registered on embedded component types come first, so
// an outer type's own declarations install over (and thereby override) an
// embedded type's when identifiers collide.
func declarationsFor(t reflect.Type) []*Declaration {
	declarations.mu.RLock()
	defer declarations.mu.RUnlock()
	return collectDeclarations(t, make(map[reflect.Type]bool))
}

func collectDeclarations(t reflect.Type, seen map[reflect.Type]bool) []*Declaration {
	if t.Kind() != reflect.Struct || seen[t] {
		return nil
	}
	seen[t] = true

	var out []*Declaration
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		out = append(out, collectDeclarations(ft, seen)...)
	}
	return append(out, declarations.decls[t]...)
}

// embedsComponent checks whether t (or any embedded struct) embeds Component.
func embedsComponent(t reflect.Type) bool {
	componentType := reflect.TypeOf((*Component)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft == componentType {
			return true
		}
		if embedsComponent(ft) {
			return true
		}
	}
	return false
}
