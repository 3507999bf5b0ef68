// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package fakedev implements an in-memory node.Node standing in for the
// leaf hardware device at the bottom of a plug or surround chain. It has
// no cgo and no kernel dependency: it records what it is given and plays
// back what it recorded, which is all package plug's and package
// surround's own tests need of a "real" device. card/device enumeration
// and the generic PCM lifecycle mechanics are out of scope per §1; Device
// exists to exercise the stream object contract, not to emulate ALSA.
package fakedev

import (
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// Device is a configurable in-memory PCM endpoint.
type Device struct {
	Name string

	// Native capabilities, as returned by HwRefine/HwParams's delegation
	// target (the device is its own bottom: HwRefine narrows the given
	// block against these, HwParams pins it).
	AccessMask params.Mask
	FormatMask params.Mask
	Channels   params.Interval
	Rate       params.Interval

	// ShortWrite, when non-negative, makes the next WriteN/WriteI/
	// MmapForward return this many frames, capped at the number requested
	// -- the hook surround's fan-out-atomicity tests use to simulate one
	// slave disagreeing with another.
	ShortWrite int

	pinned   params.Params
	hasPinned bool
	state    node.State
	recorded [][]float64
	closed   bool
}

// New returns a Device with every dimension unconstrained.
func New(name string) *Device {
	return &Device{
		Name:       name,
		AccessMask: params.Full(params.AccessCount()),
		FormatMask: params.Full(params.FormatCount()),
		Channels:   params.Any(),
		Rate:       params.Any(),
		ShortWrite: -1,
		state:      node.StateOpen,
	}
}

func (d *Device) Close() error { d.closed = true; return nil }

func (d *Device) Closed() bool { return d.closed }

func (d *Device) Info() (node.Info, error) {
	return node.Info{Name: d.Name, Stream: node.StreamPlayback}, nil
}

func (d *Device) HwRefine(p *params.HwParams) error {
	p.AccessMask.Intersect(d.AccessMask)
	if p.AccessMask.Empty() {
		return node.Invalid("%s: no common access layout", d.Name)
	}
	p.FormatMask.Intersect(d.FormatMask)
	if p.FormatMask.Empty() {
		return node.Invalid("%s: no common format", d.Name)
	}
	if err := p.Channels.Refine(d.Channels); err != nil {
		return node.Invalid("%s: channel counts disagree: %v", d.Name, err)
	}
	if err := p.Rate.Refine(d.Rate); err != nil {
		return node.Invalid("%s: rates disagree: %v", d.Name, err)
	}
	return nil
}

func (d *Device) HwParams(p *params.HwParams) error {
	if err := d.HwRefine(p); err != nil {
		return err
	}
	tuple, ok := p.Extract()
	if !ok {
		return node.Invalid("%s: hw_params requires a fully pinned block", d.Name)
	}
	d.pinned = tuple
	d.hasPinned = true
	d.state = node.StatePrepared
	return nil
}

func (d *Device) HwFree() error { d.hasPinned = false; d.state = node.StateOpen; return nil }

func (d *Device) SwParams(p node.SwParams) error { return nil }

func (d *Device) ChannelInfo(channel int) (node.ChannelInfo, error) {
	return node.ChannelInfo{Channel: channel, Step: 1}, nil
}

func (d *Device) Dump() string { return d.Name }

func (d *Device) NonBlock(nonblock bool) error { return nil }

func (d *Device) Async(sig, pid int) error { return nil }

func (d *Device) Mmap() error { return nil }

func (d *Device) Munmap() error { return nil }

func (d *Device) Status() (node.Status, error) { return node.Status{State: d.state}, nil }

func (d *Device) State() node.State { return d.state }

func (d *Device) Delay() (int, error) { return 0, nil }

func (d *Device) Prepare() error { d.state = node.StatePrepared; return nil }

func (d *Device) Reset() error { return nil }

func (d *Device) Start() error { d.state = node.StateRunning; return nil }

func (d *Device) Drop() error { d.state = node.StatePrepared; return nil }

func (d *Device) Drain() error { return nil }

func (d *Device) Pause(enable bool) error {
	if enable {
		d.state = node.StatePaused
	} else {
		d.state = node.StateRunning
	}
	return nil
}

func (d *Device) Rewind(frames int) (int, error) { return frames, nil }

func (d *Device) AvailUpdate() (int, error) { return 0, nil }

func (d *Device) MmapForward(size int) (int, error) { return d.accept(size) }

func (d *Device) accept(frames int) (int, error) {
	if d.ShortWrite >= 0 {
		n := d.ShortWrite
		d.ShortWrite = -1
		if n > frames {
			n = frames
		}
		return n, nil
	}
	return frames, nil
}

func (d *Device) WriteI(buf []float64, frames int) (int, error) {
	channels := 1
	if d.hasPinned {
		channels = d.pinned.Channels
	}
	bufs := make([][]float64, channels)
	for c := range bufs {
		bufs[c] = make([]float64, frames)
		for f := 0; f < frames; f++ {
			bufs[c][f] = buf[f*channels+c]
		}
	}
	return d.WriteN(bufs, frames)
}

func (d *Device) WriteN(bufs [][]float64, frames int) (int, error) {
	n, err := d.accept(frames)
	if err != nil {
		return 0, err
	}
	d.recorded = make([][]float64, len(bufs))
	for c := range bufs {
		d.recorded[c] = append([]float64(nil), bufs[c][:n]...)
	}
	return n, nil
}

func (d *Device) ReadI(buf []float64, frames int) (int, error) {
	return 0, node.Invalid("%s: capture not supported", d.Name)
}

func (d *Device) ReadN(bufs [][]float64, frames int) (int, error) {
	n := frames
	for c := range bufs {
		if c < len(d.recorded) {
			if n > len(d.recorded[c]) {
				n = len(d.recorded[c])
			}
		}
	}
	for c := range bufs {
		if c < len(d.recorded) {
			copy(bufs[c][:n], d.recorded[c][:n])
		}
	}
	return n, nil
}

var _ node.Node = (*Device)(nil)
