// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package surround

import (
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// Surround is the aggregator node of §3: a logical 4.0 or 5.1 stream
// presented over pcms stereo slaves (or, when pcms == 1, one slave that
// natively accepts the full channel count).
type Surround struct {
	name   string
	card   int
	device int

	channels int // logical channel count, 4 or 6
	pcms     []node.Node

	broken bool
}

// Open constructs a Surround over pcms, already-opened slave handles in
// front/rear/center-LFE order. channels must be 4 or 6; len(pcms) must be
// 1, 2, or 3, and when it is more than 1 every slave must be addressable
// as a stereo pair covering the logical channel count (2*pcms >= channels).
// Surround owns every slave unconditionally (§5): Close always closes them
// all.
func Open(name string, card, device, channels int, pcms []node.Node) (*Surround, error) {
	if channels != 4 && channels != 6 {
		return nil, node.Invalid("surround: channel count %d is neither 4.0 nor 5.1", channels)
	}
	if len(pcms) < 1 || len(pcms) > 3 {
		return nil, node.Invalid("surround: pcms must be 1, 2, or 3, got %d", len(pcms))
	}
	if len(pcms) != 1 && 2*len(pcms) < channels {
		return nil, node.Invalid("surround: %d stereo slaves cannot cover %d channels", len(pcms), channels)
	}
	return &Surround{
		name:     name,
		card:     card,
		device:   device,
		channels: channels,
		pcms:     pcms,
	}, nil
}

// --- slow ops: §4.7's fan-out. ---

func (s *Surround) Close() error {
	var first error
	for _, p := range s.pcms {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Info synthesizes the surround node's own identity per §4.7, rather than
// forwarding any one slave's: the logical device the caller opened is not
// any single slave.
func (s *Surround) Info() (node.Info, error) {
	return node.Info{
		Name:   "Surround",
		Card:   s.card,
		Device: s.device,
		Stream: node.StreamPlayback,
	}, nil
}

func (s *Surround) HwRefine(p *params.HwParams) error {
	coerced, err := coerceChannels(p.Channels, s.channels, true)
	if err != nil {
		return err
	}
	for i, slave := range s.pcms {
		sp := *p
		sp.Channels = s.slaveChannels()
		if err := slave.HwRefine(&sp); err != nil {
			return err
		}
		if i == 0 {
			*p = sp
		} else {
			if err := mergeBack(p, &sp); err != nil {
				return err
			}
		}
	}
	p.Channels = coerced
	return nil
}

func (s *Surround) HwParams(p *params.HwParams) error {
	coerced, err := coerceChannels(p.Channels, s.channels, false)
	if err != nil {
		return err
	}
	for _, slave := range s.pcms {
		sp := *p
		sp.Channels = s.slaveChannels()
		if err := slave.HwParams(&sp); err != nil {
			return err
		}
	}
	p.Channels = coerced
	return nil
}

func (s *Surround) HwFree() error {
	for _, p := range s.pcms {
		if err := p.HwFree(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Surround) SwParams(sp node.SwParams) error {
	for _, p := range s.pcms {
		if err := p.SwParams(sp); err != nil {
			return err
		}
	}
	return nil
}

// ChannelInfo index-range-dispatches to the slave owning channel, per
// §4.7: channels {0,1} to pcm[0], {2,3} to pcm[1], the rest to pcm[2].
func (s *Surround) ChannelInfo(channel int) (node.ChannelInfo, error) {
	idx := channel / 2
	if idx >= len(s.pcms) {
		return node.ChannelInfo{}, node.Invalid("surround: channel %d has no owning slave", channel)
	}
	return s.pcms[idx].ChannelInfo(channel % 2)
}

func (s *Surround) Dump() string {
	out := "surround(" + s.name + ")"
	for i, p := range s.pcms {
		out += " ["
		if i < len(s.pcms) {
			out += p.Dump()
		}
		out += "]"
	}
	return out
}

// NonBlock forwards to every slave and sets the flag process-uniformly;
// per §5, the first error wins but every slave is still attempted.
func (s *Surround) NonBlock(nonblock bool) error {
	var first error
	for _, p := range s.pcms {
		if err := p.NonBlock(nonblock); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Async is delegated exclusively to pcm[0], the primary slave and signal
// source of record per §5.
func (s *Surround) Async(sig, pid int) error { return s.pcms[0].Async(sig, pid) }

func (s *Surround) Mmap() error {
	for _, p := range s.pcms {
		if err := p.Mmap(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Surround) Munmap() error {
	for _, p := range s.pcms {
		if err := p.Munmap(); err != nil {
			return err
		}
	}
	return nil
}

var _ node.Node = (*Surround)(nil)
