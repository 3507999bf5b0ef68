// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package surround

import "github.com/sndplug/pcm/node"

// Status, State, Delay, Prepare, Reset, Start, Drop, Drain, Pause, Rewind
// and AvailUpdate are §4.8's single-stream operations, delegated
// exclusively to pcm[0]. Status and State additionally report the
// aggregator's own broken latch (set by a fan-out disagreement, cleared
// only by Prepare) ahead of whatever pcm[0] itself would say.

func (s *Surround) Status() (node.Status, error) {
	st, err := s.pcms[0].Status()
	if s.broken {
		st.State = node.StateBroken
	}
	return st, err
}

func (s *Surround) State() node.State {
	if s.broken {
		return node.StateBroken
	}
	return s.pcms[0].State()
}

func (s *Surround) Delay() (int, error) { return s.pcms[0].Delay() }

func (s *Surround) Prepare() error {
	s.broken = false
	return s.pcms[0].Prepare()
}

func (s *Surround) Reset() error { return s.pcms[0].Reset() }

func (s *Surround) Start() error { return s.pcms[0].Start() }

func (s *Surround) Drop() error { return s.pcms[0].Drop() }

func (s *Surround) Drain() error { return s.pcms[0].Drain() }

func (s *Surround) Pause(enable bool) error { return s.pcms[0].Pause(enable) }

func (s *Surround) Rewind(frames int) (int, error) { return s.pcms[0].Rewind(frames) }

func (s *Surround) AvailUpdate() (int, error) { return s.pcms[0].AvailUpdate() }

// WriteI is only valid when pcms == 1 (the native-channel fast path); with
// multiple slaves an interleaved write would require a deinterleave-then-
// fan-out this contract does not yet implement (§4.8).
func (s *Surround) WriteI(buf []float64, frames int) (int, error) {
	if s.broken {
		return 0, node.Broken("surround: stream is broken, call Prepare")
	}
	if len(s.pcms) != 1 {
		return 0, node.NotImplemented("surround: interleaved write across multiple slaves")
	}
	return s.pcms[0].WriteI(buf, frames)
}

// WriteN is §4.8's fan-out write: every slave receives the same vector of
// per-channel buffers and the same frame count; any disagreement among
// the returned counts is a broken stream. Unlike the source's
// self-recursive writen (§9's Open Question), each slave's own WriteN is
// called, not the surround node's; ReadN rejects capture (below).
func (s *Surround) WriteN(bufs [][]float64, frames int) (int, error) {
	if s.broken {
		return 0, node.Broken("surround: stream is broken, call Prepare")
	}
	return s.fanOutTransfer(frames, func(p node.Node) (int, error) {
		return p.WriteN(bufs, frames)
	})
}

// MmapForward is symmetric to WriteN per §4.8.
func (s *Surround) MmapForward(size int) (int, error) {
	if s.broken {
		return 0, node.Broken("surround: stream is broken, call Prepare")
	}
	return s.fanOutTransfer(size, func(p node.Node) (int, error) {
		return p.MmapForward(size)
	})
}

func (s *Surround) fanOutTransfer(requested int, call func(node.Node) (int, error)) (int, error) {
	counts := make([]int, len(s.pcms))
	for i, p := range s.pcms {
		n, err := call(p)
		if err != nil {
			return n, err
		}
		counts[i] = n
	}
	first := counts[0]
	for _, n := range counts[1:] {
		if n != first {
			s.broken = true
			return 0, node.Broken("surround: slaves disagree on frame count: %v", counts)
		}
	}
	return first, nil
}

// ReadI and ReadN: the stream is playback-only in the current contract
// (§4.8); capture is rejected with invalid-argument.
func (s *Surround) ReadI(buf []float64, frames int) (int, error) {
	return 0, node.Invalid("surround: capture is not supported")
}

func (s *Surround) ReadN(bufs [][]float64, frames int) (int, error) {
	return 0, node.Invalid("surround: capture is not supported")
}
