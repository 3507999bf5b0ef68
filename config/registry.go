// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"github.com/sndplug/pcm/node"
)

// SlaveFactory builds a node.Node from a "slave" subtree, selected by the
// subtree's required "type" key. Registered by whoever owns the concrete
// device/transport (fakedev in this module's own tests/demo).
type SlaveFactory func(tree map[string]interface{}) (node.Node, error)

// CardDeviceFactory resolves a surround member slave: given a resolved
// card index, device index, and the 0-based position among the pcms
// stereo slaves a surround node needs, it returns the node.Node for that
// position. Card/device enumeration itself is out of scope per spec.md
// §1; this is the seam a real backend would fill in.
type CardDeviceFactory func(card, device, subdevice int) (node.Node, error)

// Registry resolves the "slave" and "card" references a configuration
// tree names into the concrete collaborators package plug and package
// surround actually need, without either of those packages needing to
// know about configuration trees or file formats.
type Registry struct {
	slaves     map[string]SlaveFactory
	cards      map[string]int
	cardDevice CardDeviceFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{slaves: map[string]SlaveFactory{}, cards: map[string]int{}}
}

// RegisterSlave associates kind with f, so a "slave" subtree with
// `type: kind` resolves via f.
func (r *Registry) RegisterSlave(kind string, f SlaveFactory) {
	r.slaves[kind] = f
}

// RegisterCard associates a card name with an index, for the
// string-name-resolved-to-index path of surround's "card" key.
func (r *Registry) RegisterCard(name string, index int) {
	r.cards[name] = index
}

// SetCardDeviceFactory installs the factory surround configuration uses
// to materialize its member slaves.
func (r *Registry) SetCardDeviceFactory(f CardDeviceFactory) {
	r.cardDevice = f
}

// ResolveSlave dispatches a "slave" subtree to the factory named by its
// "type" key.
func (r *Registry) ResolveSlave(tree map[string]interface{}) (node.Node, error) {
	raw, ok := tree["type"]
	if !ok {
		return nil, node.Invalid("config: slave subtree missing required key \"type\"")
	}
	kind, ok := raw.(string)
	if !ok {
		return nil, node.Invalid("config: slave \"type\" must be a string")
	}
	f, ok := r.slaves[kind]
	if !ok {
		return nil, node.Invalid("config: unknown slave type %q", kind)
	}
	return f(tree)
}

// ResolveCard accepts either an integer card index or a string name
// resolved via the card-name lookup, per §6's "integer index, or string
// name resolved to an index via the card-name lookup".
func (r *Registry) ResolveCard(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case string:
		if idx, ok := r.cards[t]; ok {
			return idx, nil
		}
		return 0, node.Invalid("config: unknown card name %q", t)
	default:
		n, ok := toInt(v)
		if !ok {
			return 0, node.Invalid("config: \"card\" must be an integer or a string name")
		}
		return n, nil
	}
}

// resolveCardDevice invokes the installed CardDeviceFactory, failing
// clearly if none was installed.
func (r *Registry) resolveCardDevice(card, device, subdevice int) (node.Node, error) {
	if r.cardDevice == nil {
		return nil, node.Invalid("config: registry has no card/device slave factory installed")
	}
	return r.cardDevice(card, device, subdevice)
}
