package elemattr

import (
	"fmt"
	"sync"

	"github.com/pthm/elemattr/lib/encoding"
)

// Registry manages custom-element definitions: the mapping from element tag
// names to component constructors, plus the encoder used for attribute-state
// snapshots.
//
// Definitions are the instance-level counterpart of Define: Define records
// which properties a component type binds, the Registry records which tag
// produces which component. Upgrading an element looks up its tag,
// constructs a fresh instance, and mounts it.
type Registry struct {
	mu      sync.RWMutex
	encoder *Encoder
	defs    map[string]func() Host

	// OnError is called when upgrading an element fails.
	// Customize this to handle mount failures appropriately for your
	// application. The default is a no-op; Upgrade also returns the error.
	OnError func(el *Element, err error)
}

// NewRegistry creates a component registry with the given snapshot
// encryption key. Panics if the key cannot seed the cipher.
func NewRegistry(encryptionKey []byte) *Registry {
	enc, err := NewEncoder(encryptionKey)
	if err != nil {
		panic(fmt.Sprintf("elemattr: failed to create encoder: %v", err))
	}

	return &Registry{
		encoder: enc,
		defs:    make(map[string]func() Host),
		OnError: func(*Element, error) {},
	}
}

// Encoder returns the registry's snapshot encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add defines a custom element: instances of elements with the given tag are
// produced by create. Panics on an empty tag, a nil constructor, or a tag
// collision - definitions, like declarations, are process-lifetime and
// appended exactly once.
func (reg *Registry) Add(tag string, create func() Host) {
	if tag == "" {
		panic("elemattr: Add requires a tag name")
	}
	if create == nil {
		panic(fmt.Sprintf("elemattr: nil constructor for tag %q", tag))
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.defs[tag]; exists {
		panic(fmt.Sprintf("elemattr: tag collision for %q", tag))
	}
	reg.defs[tag] = create
}

// Defined reports whether a tag has a registered definition.
func (reg *Registry) Defined(tag string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.defs[tag]
	return ok
}

// Upgrade constructs and mounts a component for the element's tag.
//
// Attributes already present on the element win over declared defaults, as
// in a markup-authored element. Returns ErrUnknownTag for undefined tags;
// mount failures are reported through OnError and returned.
func (reg *Registry) Upgrade(el *Element) (Host, error) {
	reg.mu.RLock()
	create, ok := reg.defs[el.Tag()]
	reg.mu.RUnlock()
	if !ok {
		err := fmt.Errorf("%w: <%s>", ErrUnknownTag, el.Tag())
		reg.OnError(el, err)
		return nil, err
	}

	comp := create()
	if err := Mount(comp, el); err != nil {
		reg.OnError(el, err)
		return nil, err
	}
	return comp, nil
}

// EncodeState captures the element's attribute state as a transportable
// string. If sensitive is true the snapshot is encrypted rather than signed.
func (reg *Registry) EncodeState(el *Element, sensitive bool) (string, error) {
	snap := encoding.Snapshot{Tag: el.Tag()}
	for _, name := range el.Attributes() {
		text, _ := el.GetAttribute(name)
		snap.Names = append(snap.Names, name)
		snap.Texts = append(snap.Texts, text)
	}
	return reg.encoder.Encode(snap, sensitive)
}

// RestoreState rebuilds an element from an encoded snapshot and upgrades it,
// returning the mounted component alongside the element. The snapshot's
// attributes are applied before mounting, so they take precedence over
// declared defaults exactly as markup-authored attributes do.
func (reg *Registry) RestoreState(encoded string, sensitive bool) (Host, *Element, error) {
	snap, err := reg.encoder.Decode(encoded, sensitive)
	if err != nil {
		return nil, nil, wrapEncodingError(err)
	}

	el := NewElement(snap.Tag)
	for i, name := range snap.Names {
		el.SetAttribute(name, snap.Texts[i])
	}

	comp, err := reg.Upgrade(el)
	if err != nil {
		return nil, nil, err
	}
	return comp, el, nil
}
