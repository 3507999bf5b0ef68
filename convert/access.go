// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package convert

import (
	"github.com/sndplug/pcm/dsp"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// OpenAccess implements the access factory of §4.2's change_access stage:
// a copy/repack node presenting clientAccess to its caller while driving
// slave at slaveAccess. Every Node in this module already carries samples
// in channel-deinterleaved Blocks regardless of the access layout it
// reports, so the repack itself is package dsp's PassThrough; what the
// wrapper actually changes is the access layout the two sides see on
// their hardware-parameter blocks, which the plug chain builder tracks,
// not which bytes move through this node.
func OpenAccess(name string, slaveFormat params.Format, slave node.Node, closeSlave bool, clientAccess, slaveAccess params.Access, channels int) (node.Node, error) {
	_ = clientAccess
	k := newKernelNode(name, slave, closeSlave, channels, channels, 1.0, dsp.PassThrough, dsp.PassThrough)
	k.pin = func(h *params.HwParams) { h.AccessMask = params.NewMask(int(slaveAccess)) }
	return k, nil
}
