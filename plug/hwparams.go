// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package plug

import (
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// pinHwParams collapses every dimension of h to a single representative
// value: the first bit of each mask, and each interval pinned near
// itself. It is used only on scratch copies taken for tuple extraction in
// HwParams; it never mutates the caller's own block.
func pinHwParams(h *params.HwParams) {
	if a, ok := h.FirstAccess(); ok {
		h.AccessMask = params.NewMask(int(a))
	}
	for f := 0; f < params.FormatCount(); f++ {
		if h.FormatMask.Test(f) {
			h.FormatMask = params.NewMask(f)
			break
		}
	}
	h.Channels.RefineNear(h.Channels)
	h.Rate.RefineNear(h.Rate)
}

// HwParams is the planner+builder of §4.5.
func (p *Plug) HwParams(client *params.HwParams) error {
	native, err := p.nativeSlaveCaps()
	if err != nil {
		return err
	}

	// (a) prepare a fresh slave-side block and apply schange.
	slave := params.AnyHwParams()
	if err := schange(client, &slave, native); err != nil {
		return err
	}

	// (b) soft-refine the slave.
	refined := slave
	if err := p.reqSlave.HwRefine(&refined); err != nil {
		return err
	}

	// (c) extract client and slave four-tuples.
	clientPinned := *client
	pinHwParams(&clientPinned)
	clientTuple, ok := clientPinned.Extract()
	if !ok {
		return node.Invalid("plug: client hw_params block does not resolve to a single configuration")
	}
	slavePinned := refined
	pinHwParams(&slavePinned)
	slaveTuple, ok := slavePinned.Extract()
	if !ok {
		return node.Invalid("plug: slave hw_params block does not resolve to a single configuration")
	}

	// (d) tear down any previous chain.
	p.clear()

	// (e) skip the chain when format, channels and rate agree and the
	// slave also accepts the client's access; otherwise build it.
	sameShape := clientTuple.Format == slaveTuple.Format &&
		clientTuple.Channels == slaveTuple.Channels &&
		clientTuple.Rate == slaveTuple.Rate
	if sameShape && refined.AccessMask.Test(int(clientTuple.Access)) {
		p.current = p.reqSlave
	} else {
		access, ok := refined.FirstAccess()
		if !ok {
			return node.Invalid("plug: slave offers no usable access layout")
		}
		start := slaveTuple
		start.Access = access
		current, chain, err := buildChain(clientTuple, start, p.reqSlave, p.matrix)
		if err != nil {
			return err
		}
		p.chain = chain
		p.current = current
	}

	// (f) apply the original hw_params to the chain head.
	if err := p.current.HwParams(client); err != nil {
		p.clear()
		return err
	}
	return nil
}
