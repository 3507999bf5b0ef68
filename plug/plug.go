// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package plug

import (
	"github.com/sndplug/pcm/convert"
	"github.com/sndplug/pcm/node"
)

// Plug is the adaptation node of §3: it owns a chain of conversion
// wrappers built on demand in front of a requested slave, and publishes
// the chain head's fast-ops table as its own.
type Plug struct {
	name string

	reqSlave   node.Node
	closeSlave bool

	// matrix, if non-nil, was supplied at open and is used verbatim by
	// change_channels instead of synthesizing one; per §9 it is owned by
	// the plug and released at close.
	matrix *convert.Matrix

	// chain holds the owned conversion wrappers, outermost (closest to
	// the client) last; current is chain's tail, or reqSlave if chain is
	// empty. current is the node every SlowOps/FastOps call delegates to.
	chain   []node.Node
	current node.Node
}

// Open builds a Plug presenting itself over slave. matrix, if non-nil, is
// the ttable supplied at open per §6/§9 and is used verbatim wherever
// change_channels would otherwise synthesize one; Open takes ownership of
// it. closeSlave controls whether Close also closes slave (§8 property
// 8).
func Open(name string, slave node.Node, closeSlave bool, matrix *convert.Matrix) (*Plug, error) {
	return &Plug{
		name:       name,
		reqSlave:   slave,
		closeSlave: closeSlave,
		matrix:     matrix,
		current:    slave,
	}, nil
}

// OpenOverDevice is Open with no supplied ttable, the direct PCM-I/O
// variant supplementing the source's snd_pcm_plug_open_hw: a plug over a
// named hardware slave with default transfer-matrix synthesis.
func OpenOverDevice(name string, slave node.Node, closeSlave bool) (*Plug, error) {
	return Open(name, slave, closeSlave, nil)
}

// clear tears the chain down to the requested slave, mirroring the
// source's snd_pcm_plug_clear: every owned wrapper is closed (closeSlave
// is always true for a wrapper the chain itself inserted, since the plug
// uniquely owns its intermediate nodes per §5), and current reverts to
// reqSlave. It does not close reqSlave itself.
func (p *Plug) clear() {
	for i := len(p.chain) - 1; i >= 0; i-- {
		p.chain[i].Close()
	}
	p.chain = nil
	p.current = p.reqSlave
}

// Close releases the plug's chain and, if closeSlave, the requested
// slave too (§5 shared-resource policy, §8 property 8).
func (p *Plug) Close() error {
	p.clear()
	if p.closeSlave {
		return p.reqSlave.Close()
	}
	return nil
}

// CurrentSlave returns the chain head the plug currently delegates to;
// exported for Testable Property 1 (plug-identity).
func (p *Plug) CurrentSlave() node.Node { return p.current }

// --- slow ops: delegate to the published chain head, except the three
// plug manages itself. ---

func (p *Plug) Info() (node.Info, error) { return p.current.Info() }

// HwFree tears the chain down before delegating to the requested slave,
// mirroring the source's snd_pcm_plug_hw_free calling snd_pcm_plug_clear
// before the slave's hw_free: current must revert to reqSlave so the next
// hw_params builds a fresh chain instead of stacking onto torn-down
// wrappers.
func (p *Plug) HwFree() error {
	p.clear()
	return p.reqSlave.HwFree()
}

func (p *Plug) SwParams(sp node.SwParams) error { return p.current.SwParams(sp) }

func (p *Plug) ChannelInfo(channel int) (node.ChannelInfo, error) { return p.current.ChannelInfo(channel) }

func (p *Plug) Dump() string { return "plug(" + p.name + ") -> " + p.current.Dump() }

func (p *Plug) NonBlock(nonblock bool) error { return p.reqSlave.NonBlock(nonblock) }

func (p *Plug) Async(sig, pid int) error { return p.reqSlave.Async(sig, pid) }

func (p *Plug) Mmap() error { return p.current.Mmap() }

func (p *Plug) Munmap() error { return p.current.Munmap() }

// --- fast ops: delegate to the published chain head. ---

func (p *Plug) Status() (node.Status, error) { return p.current.Status() }

func (p *Plug) State() node.State { return p.current.State() }

func (p *Plug) Delay() (int, error) { return p.current.Delay() }

func (p *Plug) Prepare() error { return p.current.Prepare() }

func (p *Plug) Reset() error { return p.current.Reset() }

func (p *Plug) Start() error { return p.current.Start() }

func (p *Plug) Drop() error { return p.current.Drop() }

func (p *Plug) Drain() error { return p.current.Drain() }

func (p *Plug) Pause(enable bool) error { return p.current.Pause(enable) }

func (p *Plug) Rewind(frames int) (int, error) { return p.current.Rewind(frames) }

func (p *Plug) WriteI(buf []float64, frames int) (int, error) { return p.current.WriteI(buf, frames) }

func (p *Plug) WriteN(bufs [][]float64, frames int) (int, error) { return p.current.WriteN(bufs, frames) }

func (p *Plug) ReadI(buf []float64, frames int) (int, error) { return p.current.ReadI(buf, frames) }

func (p *Plug) ReadN(bufs [][]float64, frames int) (int, error) { return p.current.ReadN(bufs, frames) }

func (p *Plug) AvailUpdate() (int, error) { return p.current.AvailUpdate() }

func (p *Plug) MmapForward(size int) (int, error) { return p.current.MmapForward(size) }

var _ node.Node = (*Plug)(nil)
