// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package plug

import (
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// nativeSlaveCaps queries the requested slave's real capabilities by
// refining a fresh "any" block against it. schange and cchange both
// reason about "the slave's format mask" in terms of what the device can
// actually do, not the placeholder "any" sprepare installs; querying it
// up front is how this module gets that without needing the generic PCM
// layer's cross-call sparams state threading §4.4 otherwise assumes.
func (p *Plug) nativeSlaveCaps() (params.HwParams, error) {
	h := params.AnyHwParams()
	if err := p.reqSlave.HwRefine(&h); err != nil {
		return params.HwParams{}, err
	}
	return h, nil
}

func accessMasksAgree(a, b params.Mask) bool {
	a.Intersect(b)
	return !a.Empty()
}

// schange is §4.4's client -> slave callback.
func schange(client, slave *params.HwParams, native params.HwParams) error {
	slave.Channels = native.Channels
	slave.Channels.RefineNear(client.Channels)
	slave.Rate = native.Rate
	slave.Rate.RefineNear(client.Rate)

	var fmtMask params.Mask
	for f := 0; f < params.FormatCount(); f++ {
		if !client.FormatMask.Test(f) {
			continue
		}
		if g := params.SlaveFormat(params.Format(f), native.FormatMask); g != params.FormatUnknown {
			fmtMask.Set(int(g))
		}
	}
	if fmtMask.Empty() {
		return node.Invalid("plug: no slave format reachable from the client's format mask")
	}
	slave.FormatMask = fmtMask
	slave.AccessMask = native.AccessMask

	noCommon := client.Channels.NeverEq(slave.Channels) ||
		client.Rate.NeverEq(slave.Rate) ||
		client.FormatMask.NeverEq(slave.FormatMask) ||
		!accessMasksAgree(client.AccessMask, slave.AccessMask)
	if noCommon {
		slave.RestrictToMMAP()
	}

	if client.Rate.AlwaysEq(slave.Rate) {
		if err := slave.RefineLinked(client, params.LinkPeriodSize, params.LinkBufferSize); err != nil {
			return err
		}
	} else {
		scaled := client.BufferSize.Unfloor().MulDiv(slave.Rate, client.Rate)
		if err := slave.BufferSize.Refine(scaled); err != nil {
			return err
		}
	}
	if err := slave.PeriodTime.Refine(client.PeriodTime); err != nil {
		return err
	}
	if err := slave.TickTime.Refine(client.TickTime); err != nil {
		return err
	}
	return nil
}

// cchange is §4.4's slave -> client callback.
func cchange(slave, client *params.HwParams) error {
	var fmtMask params.Mask
	for f := 0; f < params.FormatCount(); f++ {
		if !client.FormatMask.Test(f) {
			continue
		}
		if params.SlaveFormat(params.Format(f), slave.FormatMask) != params.FormatUnknown {
			fmtMask.Set(f)
		}
	}
	if fmtMask.Empty() {
		return node.Invalid("plug: no client format reachable from the slave's format mask")
	}
	client.FormatMask = fmtMask

	if client.Rate.AlwaysEq(slave.Rate) {
		if err := client.RefineLinked(slave, params.LinkPeriodSize, params.LinkBufferSize); err != nil {
			return err
		}
	} else {
		client.BufferSize = slave.BufferSize.MulDiv(client.Rate, slave.Rate).Floor()
	}
	if err := client.PeriodTime.Refine(slave.PeriodTime); err != nil {
		return err
	}
	if err := client.TickTime.Refine(slave.TickTime); err != nil {
		return err
	}
	client.Info &^= params.InfoMMAP | params.InfoMMAPValid
	return nil
}

// HwRefine is the plug's two-way hw_refine of §4.4: cprepare is the
// identity (client is used as given), sprepare starts the slave block at
// "any", schange narrows it toward the client and the real slave, and
// cchange narrows the client back against what the slave actually
// offers.
func (p *Plug) HwRefine(client *params.HwParams) error {
	native, err := p.nativeSlaveCaps()
	if err != nil {
		return err
	}
	slave := params.AnyHwParams()
	if err := schange(client, &slave, native); err != nil {
		return err
	}
	if err := p.reqSlave.HwRefine(&slave); err != nil {
		return err
	}
	return cchange(&slave, client)
}
