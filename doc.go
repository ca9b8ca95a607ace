// Package elemattr keeps component properties and element attributes in
// sync, declaratively, for server-rendered custom elements.
//
// A component author declares once which properties a component binds; the
// runtime keeps each property and its HTML attribute agreeing in both
// directions, coercing between the attribute's string form and the
// property's typed form and translating camel-case identifiers to
// kebab-case attribute names.
//
// # Core Concepts
//
// Components embed elemattr.Component and register declarations with Define:
//
//	type Counter struct {
//	    elemattr.Component
//	}
//
//	func init() {
//	    elemattr.Define[Counter](
//	        elemattr.Attr("clipX", elemattr.Number, 0),
//	        elemattr.Attr("active", elemattr.Boolean, false),
//	        elemattr.Attr("testArray", elemattr.Array, []int{1, 2, 3}),
//	    )
//	}
//
// Mounting an instance onto an Element installs a live accessor per
// declaration. The accessor has no backing field: the element's attribute
// store is the single source of truth, and every read or write passes
// through the declared kind's coercion rule. clipX binds to clip-x,
// testArray to test-array; an identifier with no word boundary (plain
// "foo") is rejected at mount time.
//
// # Kinds and Coercion
//
// Five kinds exist, selected at declaration time from the default value's
// shape: Number, Boolean, String, Array, Object. Numbers store decimal
// text, arrays and objects store JSON, strings store verbatim text, and
// booleans store presence alone - any attribute text, even "false", reads
// as true, and setting false removes the attribute.
//
// # Precedence
//
// When a mounted element already carries an attribute (authored in markup
// or restored from a snapshot), that value wins. Otherwise the declared
// default is pushed through the new setter, which reflects it into the
// attribute immediately - except a Boolean false, which leaves the
// attribute absent.
//
// # Custom Elements
//
// A Registry maps element tags to component constructors, mirroring
// customElements.define:
//
//	reg := elemattr.NewRegistry(key)
//	reg.Add("x-counter", func() elemattr.Host { return &Counter{} })
//	comp, err := reg.Upgrade(el)
//
// The registry also snapshots element state (signed or encrypted msgpack)
// for round-trips through clients, and templ helpers render the live host
// tag. Code generation (cmd/elemattr) produces typed accessor wrappers for
// each declaration, so property access is compile-time checked.
//
// # Failure Model
//
// Misconfiguration fails fast: declaration misuse panics at evaluation
// time, naming and kind errors abort the mount, and decode-shape mismatches
// surface from the property getter. Nothing is retried or partially
// applied; the system runs at setup time, not on a hot path.
package elemattr
