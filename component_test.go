package elemattr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fiveKinds struct {
	Component
}

type badNameComp struct {
	Component
}

type arrayOnly struct {
	Component
}

type hookComp struct {
	Component
}

type namedDefaults struct {
	Component
}

type partialPush struct {
	Component
}

type mountOrder struct {
	Component
	sawProps []string
}

func (m *mountOrder) OnMount(el *Element) error {
	// Accessors are installed before OnMount runs.
	m.sawProps = m.Properties()
	return nil
}

func init() {
	Define[fiveKinds](
		Attr("clipX", Number, 10),
		Attr("isActive", Boolean, false),
		Attr("displayName", String, "untitled"),
		Attr("testArray", Array, []int{1, 2, 3}),
		Attr("metaData", Object, map[string]any{"genre": "jazz"}),
	)
	Define[badNameComp](
		Attr("foo", String, "x"),
	)
	Define[namedDefaults](
		Attr("clipX", Number, pixels(10)),
		Attr("isActive", Boolean, enabled(true)),
		Attr("displayName", String, caption("untitled")),
	)
	Define[partialPush](
		Attr("clipX", Number, 10),
		Attr("isActive", Boolean, true),
		Attr("foo", String, "x"),
	)
	Define[arrayOnly](
		Attr("testArray", Array, []int{1, 2, 3}),
	)
	Define[mountOrder](
		Attr("clipX", Number, 5),
	)
}

func TestMountReflectsDefaults(t *testing.T) {
	c := &fiveKinds{}
	el := NewElement("x-five")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		prop string
		attr string
		text string
		want any
	}{
		{"clipX", "clip-x", "10", float64(10)},
		{"displayName", "display-name", "untitled", "untitled"},
		{"testArray", "test-array", "[1,2,3]", []any{1.0, 2.0, 3.0}},
		{"metaData", "meta-data", `{"genre":"jazz"}`, map[string]any{"genre": "jazz"}},
	}

	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			text, ok := el.GetAttribute(tt.attr)
			if !ok {
				t.Fatalf("default for %s did not reflect into attribute %s", tt.prop, tt.attr)
			}
			if text != tt.text {
				t.Errorf("attribute text = %q, want %q", text, tt.text)
			}
			v, err := c.Get(tt.prop)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, v); diff != "" {
				t.Errorf("property value (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("boolean false creates no attribute", func(t *testing.T) {
		if el.HasAttribute("is-active") {
			t.Error("false default must not create the attribute")
		}
		v, err := c.Get("isActive")
		if err != nil || v != false {
			t.Errorf("isActive = (%v, %v), want (false, nil)", v, err)
		}
	})
}

func TestMountAttributePrecedence(t *testing.T) {
	el := NewElement("x-five")
	el.SetAttribute("clip-x", "99")
	el.SetAttribute("is-active", "false") // presence wins, text ignored
	el.SetAttribute("display-name", "from markup")
	el.SetAttribute("test-array", "[7,8,9]")
	el.SetAttribute("meta-data", `{"genre":"blues"}`)

	c := &fiveKinds{}
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	if v, _ := c.Get("clipX"); v != float64(99) {
		t.Errorf("clipX = %v, want 99", v)
	}
	if v, _ := c.Get("isActive"); v != true {
		t.Errorf("isActive = %v, want true (attribute present)", v)
	}
	if v, _ := c.Get("displayName"); v != "from markup" {
		t.Errorf("displayName = %v", v)
	}
	if v, _ := c.Get("testArray"); cmp.Diff([]any{7.0, 8.0, 9.0}, v) != "" {
		t.Errorf("testArray = %v, want [7 8 9]", v)
	}
	if v, _ := c.Get("metaData"); cmp.Diff(map[string]any{"genre": "blues"}, v) != "" {
		t.Errorf("metaData = %v", v)
	}

	// Markup text must survive the mount untouched.
	if text, _ := el.GetAttribute("test-array"); text != "[7,8,9]" {
		t.Errorf("markup attribute was rewritten to %q", text)
	}
}

func TestSetReflectsIntoAttribute(t *testing.T) {
	c := &fiveKinds{}
	el := NewElement("x-five")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	if err := c.Set("clipX", 42); err != nil {
		t.Fatal(err)
	}
	if text, _ := el.GetAttribute("clip-x"); text != "42" {
		t.Errorf("clip-x = %q, want \"42\"", text)
	}

	if err := c.Set("isActive", true); err != nil {
		t.Fatal(err)
	}
	if text, ok := el.GetAttribute("is-active"); !ok || text != "" {
		t.Errorf("is-active = (%q, %v), want present and empty", text, ok)
	}
	if err := c.Set("isActive", false); err != nil {
		t.Fatal(err)
	}
	if el.HasAttribute("is-active") {
		t.Error("setting false should remove is-active")
	}
}

func TestSetIdempotence(t *testing.T) {
	c := &fiveKinds{}
	el := NewElement("x-five")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	props := []string{"clipX", "displayName", "testArray", "metaData"}
	for _, prop := range props {
		t.Run(prop, func(t *testing.T) {
			attr, err := c.AttributeName(prop)
			if err != nil {
				t.Fatal(err)
			}
			before, _ := el.GetAttribute(attr)
			v, err := c.Get(prop)
			if err != nil {
				t.Fatal(err)
			}
			if err := c.Set(prop, v); err != nil {
				t.Fatal(err)
			}
			after, _ := el.GetAttribute(attr)
			if before != after {
				t.Errorf("rewriting current value changed %s: %q -> %q", attr, before, after)
			}
		})
	}
}

func TestMountNamedTypeDefaults(t *testing.T) {
	// A declaration the validator accepted must mount: defaults whose types
	// are named (type pixels float64) push through the same codec their
	// underlying kind selected.
	c := &namedDefaults{}
	el := NewElement("x-named")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	if text, _ := el.GetAttribute("clip-x"); text != "10" {
		t.Errorf("clip-x = %q, want \"10\"", text)
	}
	if !el.HasAttribute("is-active") {
		t.Error("named bool true default should create is-active")
	}
	if text, _ := el.GetAttribute("display-name"); text != "untitled" {
		t.Errorf("display-name = %q, want \"untitled\"", text)
	}
	if v, _ := c.Get("clipX"); v != float64(10) {
		t.Errorf("clipX = %v, want 10", v)
	}
}

func TestMountNamingError(t *testing.T) {
	c := &badNameComp{}
	err := Mount(c, NewElement("x-bad"))
	if !errors.Is(err, ErrNoSeparator) {
		t.Fatalf("Mount error = %v, want ErrNoSeparator", err)
	}
	if !IsNamingError(err) {
		t.Error("IsNamingError should match")
	}
	// A failed mount leaves no partial bindings.
	if c.Mounted() {
		t.Error("component must not be mounted after a naming error")
	}
}

func TestMountFailureLeavesElementUntouched(t *testing.T) {
	// partialPush reflects two defaults before its third declaration fails
	// the name derivation. The unwind must take those pushed attributes
	// back off the element while leaving authored attributes alone.
	el := NewElement("x-partial")
	el.SetAttribute("clip-x", "5")

	err := Mount(&partialPush{}, el)
	if !errors.Is(err, ErrNoSeparator) {
		t.Fatalf("Mount error = %v, want ErrNoSeparator", err)
	}

	if el.HasAttribute("is-active") {
		t.Error("pushed default survived the unwind")
	}
	if text, ok := el.GetAttribute("clip-x"); !ok || text != "5" {
		t.Errorf("authored clip-x = (%q, %v), want (\"5\", true)", text, ok)
	}
	if diff := cmp.Diff([]string{"clip-x"}, el.Attributes()); diff != "" {
		t.Errorf("attributes after failed mount (-want +got):\n%s", diff)
	}
}

func TestMountLifecycle(t *testing.T) {
	t.Run("undeclared type", func(t *testing.T) {
		type undeclared struct{ Component }
		err := Mount(&undeclared{}, NewElement("x-none"))
		if !errors.Is(err, ErrNotDeclared) {
			t.Errorf("Mount error = %v, want ErrNotDeclared", err)
		}
	})

	t.Run("double mount", func(t *testing.T) {
		c := &fiveKinds{}
		if err := Mount(c, NewElement("x-five")); err != nil {
			t.Fatal(err)
		}
		if err := Mount(c, NewElement("x-five")); err == nil {
			t.Error("second Mount should fail")
		}
	})

	t.Run("access before mount", func(t *testing.T) {
		c := &fiveKinds{}
		if _, err := c.Get("clipX"); !errors.Is(err, ErrNotMounted) {
			t.Errorf("Get error = %v, want ErrNotMounted", err)
		}
		if err := c.Set("clipX", 1); !errors.Is(err, ErrNotMounted) {
			t.Errorf("Set error = %v, want ErrNotMounted", err)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		c := &fiveKinds{}
		if err := Mount(c, NewElement("x-five")); err != nil {
			t.Fatal(err)
		}
		if _, err := c.Get("nope"); !errors.Is(err, ErrNotDeclared) {
			t.Errorf("Get error = %v, want ErrNotDeclared", err)
		}
	})

	t.Run("OnMount runs after installation", func(t *testing.T) {
		c := &mountOrder{}
		if err := Mount(c, NewElement("x-order")); err != nil {
			t.Fatal(err)
		}
		if len(c.sawProps) != 1 || c.sawProps[0] != "clipX" {
			t.Errorf("OnMount saw properties %v, want [clipX]", c.sawProps)
		}
	})
}

func TestExternalAttributeMutation(t *testing.T) {
	// The attribute store is the single source of truth: external writes
	// are visible through the property with no cache in between.
	c := &arrayOnly{}
	el := NewElement("x-array")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	el.SetAttribute("test-array", "[7,8,9]")
	v, err := c.Get("testArray")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{7.0, 8.0, 9.0}, v); diff != "" {
		t.Errorf("property after external write (-want +got):\n%s", diff)
	}

	// Shape mismatch surfaces at read time, not mount time.
	el.SetAttribute("test-array", `{"oops":1}`)
	if _, err := c.Get("testArray"); !IsDecodeError(err) {
		t.Errorf("Get error = %v, want decode-shape error", err)
	}
}

func TestEndToEndArray(t *testing.T) {
	c := &arrayOnly{}
	el := NewElement("x-array")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	if text, _ := el.GetAttribute("test-array"); text != "[1,2,3]" {
		t.Fatalf("initial attribute text = %q, want \"[1,2,3]\"", text)
	}
	v, err := GetAs[[]any](c, "testArray")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0, 3.0}, v); diff != "" {
		t.Fatalf("initial property (-want +got):\n%s", diff)
	}

	if err := c.Set("testArray", []int{4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	if text, _ := el.GetAttribute("test-array"); text != "[4,5,6]" {
		t.Errorf("attribute after Set = %q, want \"[4,5,6]\"", text)
	}

	el.SetAttribute("test-array", "[7,8,9]")
	v, err = GetAs[[]any](c, "testArray")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{7.0, 8.0, 9.0}, v); diff != "" {
		t.Errorf("property after external write (-want +got):\n%s", diff)
	}
}

func TestGetAsKindMismatch(t *testing.T) {
	c := &arrayOnly{}
	if err := Mount(c, NewElement("x-array")); err != nil {
		t.Fatal(err)
	}
	if _, err := GetAs[string](c, "testArray"); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("GetAs[string] error = %v, want ErrKindMismatch", err)
	}
}

func TestEmbeddedOverride(t *testing.T) {
	// defineChild redeclares sharedName over defineParent (see declare_test).
	// The parent's pass installs first and pushes its default; the child's
	// pass replaces the accessor but must not push again - the attribute is
	// already present from the earlier pass.
	c := &defineChild{}
	el := NewElement("x-child")
	if err := Mount(c, el); err != nil {
		t.Fatal(err)
	}

	if text, _ := el.GetAttribute("shared-name"); text != "1" {
		t.Errorf("shared-name = %q, want \"1\" (first install's default)", text)
	}
	if v, _ := c.Get("sharedName"); v != float64(1) {
		t.Errorf("sharedName = %v, want 1", v)
	}
	if v, _ := c.Get("parentOnly"); v != "p" {
		t.Errorf("parentOnly = %v, want \"p\"", v)
	}
	if text, _ := el.GetAttribute("parent-only"); text != "p" {
		t.Errorf("parent-only = %q, want \"p\"", text)
	}
}

func TestAuthorAccessorInterop(t *testing.T) {
	var gets, sets int

	Define[hookComp](
		Attr("clipX", Number, 10).WithAccessor(
			func(next func() (any, error)) (any, error) {
				gets++
				return next()
			},
			func(v any, next func(any) error) error {
				sets++
				return next(v)
			},
		),
	)

	t.Run("absent attribute", func(t *testing.T) {
		gets, sets = 0, 0
		c := &hookComp{}
		el := NewElement("x-hook")
		if err := Mount(c, el); err != nil {
			t.Fatal(err)
		}

		// Mounting a fresh instance: getter once for the reflect check,
		// setter once for the default push. Never more.
		if gets != 1 || sets != 1 {
			t.Fatalf("after mount gets=%d sets=%d, want 1 and 1", gets, sets)
		}
		if text, _ := el.GetAttribute("clip-x"); text != "10" {
			t.Errorf("clip-x = %q, want \"10\"", text)
		}

		// Each subsequent access runs the hook exactly once per call.
		if _, err := c.Get("clipX"); err != nil {
			t.Fatal(err)
		}
		if gets != 2 {
			t.Errorf("gets after one read = %d, want 2", gets)
		}
		if err := c.Set("clipX", 11); err != nil {
			t.Fatal(err)
		}
		if sets != 2 {
			t.Errorf("sets after one write = %d, want 2", sets)
		}
	})

	t.Run("present attribute skips the push", func(t *testing.T) {
		gets, sets = 0, 0
		el := NewElement("x-hook")
		el.SetAttribute("clip-x", "77")
		c := &hookComp{}
		if err := Mount(c, el); err != nil {
			t.Fatal(err)
		}
		if gets != 0 || sets != 0 {
			t.Errorf("mount with authored attribute ran hooks: gets=%d sets=%d", gets, sets)
		}
		if v, _ := c.Get("clipX"); v != float64(77) {
			t.Errorf("clipX = %v, want 77", v)
		}
	})
}
