package elemattr

// Element is an ordered attribute store with presence semantics, modeling the
// attribute surface of a custom element host.
//
// Attributes are string-valued; presence is meaningful independently of the
// value (a boolean attribute is present with empty text). Element is the
// single source of truth for every bound property - the binder installs no
// cache above it, so external attribute mutation is immediately visible
// through the property accessors.
//
// Element is not safe for concurrent use; mount and attribute access run on
// a single goroutine, matching the synchronous lifecycle it models.
type Element struct {
	tag   string
	attrs map[string]string
	order []string
}

// NewElement creates an element with the given tag name and no attributes.
func NewElement(tag string) *Element {
	return &Element{
		tag:   tag,
		attrs: make(map[string]string),
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// GetAttribute returns the attribute's text and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttribute reports whether the attribute is present, regardless of text.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttribute sets the attribute's text, creating it if absent.
// First creation fixes the attribute's position in iteration order.
func (e *Element) SetAttribute(name, text string) {
	if _, ok := e.attrs[name]; !ok {
		e.order = append(e.order, name)
	}
	e.attrs[name] = text
}

// ToggleAttribute forces the attribute present (with empty text) or absent.
func (e *Element) ToggleAttribute(name string, force bool) {
	if force {
		if !e.HasAttribute(name) {
			e.SetAttribute(name, "")
		}
		return
	}
	e.RemoveAttribute(name)
}

// RemoveAttribute deletes the attribute. Removing an absent attribute is a no-op.
func (e *Element) RemoveAttribute(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Attributes returns the attribute names in creation order.
func (e *Element) Attributes() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
