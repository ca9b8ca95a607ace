package elemattr

import (
	"bytes"
	"context"
	"sort"
	"strings"
)

// MountResult holds a freshly mounted component and its element for testing.
//
// Provides convenience methods for asserting on attribute text, presence,
// property values, and rendered HTML without HTTP mechanics.
type MountResult struct {
	Comp Host
	El   *Element
}

// TestMount creates an element, applies any preset attributes, and mounts
// the component onto it.
//
// Preset attributes model markup-authored values: they are present before
// the binder runs, so they take precedence over declared defaults. They are
// applied in sorted name order for deterministic rendering.
//
//	res, err := elemattr.TestMount(&Counter{}, "x-counter", map[string]string{
//	    "clip-x": "42",
//	})
func TestMount(comp Host, tag string, attrs map[string]string) (*MountResult, error) {
	el := NewElement(tag)

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el.SetAttribute(name, attrs[name])
	}

	if err := Mount(comp, el); err != nil {
		return nil, err
	}
	return &MountResult{Comp: comp, El: el}, nil
}

// Attr returns the attribute's text and presence on the mounted element.
func (m *MountResult) Attr(name string) (string, bool) {
	return m.El.GetAttribute(name)
}

// HasAttr reports attribute presence on the mounted element.
func (m *MountResult) HasAttr(name string) bool {
	return m.El.HasAttribute(name)
}

// Get reads a bound property on the mounted component.
func (m *MountResult) Get(name string) (any, error) {
	return m.Comp.component().Get(name)
}

// Set writes a bound property on the mounted component.
func (m *MountResult) Set(name string, v any) error {
	return m.Comp.component().Set(name, v)
}

// HTML renders the component's host element to a string.
func (m *MountResult) HTML() (string, error) {
	ctx := context.Background()
	var buf bytes.Buffer
	if err := RenderHost(ctx, m.Comp).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTMLContains reports whether the rendered host element contains the
// given substring. Render errors read as "does not contain".
func (m *MountResult) HTMLContains(s string) bool {
	html, err := m.HTML()
	if err != nil {
		return false
	}
	return strings.Contains(html, s)
}
