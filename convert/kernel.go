// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package convert

import (
	"github.com/sndplug/pcm/dsp"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// kernelNode is the common shape of every conversion wrapper: a slave Node
// plus a pair of Processors, one for each transfer direction. playback
// runs client-shaped (inChannels) samples forward into slave-shaped
// (outChannels) samples on WriteI/WriteN; capture runs the reverse on
// ReadI/ReadN. ratio is the expected (slave frames)/(client frames) count
// for the playback direction; for every kernel but rate it is 1.
type kernelNode struct {
	name       string
	slave      node.Node
	closeSlave bool

	inChannels, outChannels int
	ratio                   float64

	// pin mutates a copy of the caller's HwParams into the shape this
	// wrapper's slave side is fixed to before HwParams forwards it down;
	// without it a hw_params call would propagate the client-side request
	// unchanged, which the slave below (already pinned to a different
	// shape by construction) could not satisfy.
	pin func(h *params.HwParams)

	playback dsp.Processor
	capture  dsp.Processor

	srcBlk, dstBlk dsp.Block
}

func newKernelNode(name string, slave node.Node, closeSlave bool, inCh, outCh int, ratio float64, playback, capture dsp.Processor) *kernelNode {
	return &kernelNode{
		name:        name,
		slave:       slave,
		closeSlave:  closeSlave,
		inChannels:  inCh,
		outChannels: outCh,
		ratio:       ratio,
		playback:    playback,
		capture:     capture,
	}
}

// --- slow ops: delegate verbatim, Close respects ownership. ---

func (k *kernelNode) Close() error {
	if k.closeSlave {
		return k.slave.Close()
	}
	return nil
}

func (k *kernelNode) Info() (node.Info, error) { return k.slave.Info() }

func (k *kernelNode) HwRefine(p *params.HwParams) error { return k.slave.HwRefine(p) }

func (k *kernelNode) HwParams(p *params.HwParams) error {
	if k.pin == nil {
		return k.slave.HwParams(p)
	}
	slaveH := *p
	k.pin(&slaveH)
	return k.slave.HwParams(&slaveH)
}

func (k *kernelNode) HwFree() error { return k.slave.HwFree() }

func (k *kernelNode) SwParams(p node.SwParams) error { return k.slave.SwParams(p) }

func (k *kernelNode) ChannelInfo(channel int) (node.ChannelInfo, error) { return k.slave.ChannelInfo(channel) }

func (k *kernelNode) Dump() string { return k.name + " -> " + k.slave.Dump() }

func (k *kernelNode) NonBlock(nonblock bool) error { return k.slave.NonBlock(nonblock) }

func (k *kernelNode) Async(sig, pid int) error { return k.slave.Async(sig, pid) }

func (k *kernelNode) Mmap() error { return k.slave.Mmap() }

func (k *kernelNode) Munmap() error { return k.slave.Munmap() }

// --- fast ops: single-stream status operations delegate to the slave. ---

func (k *kernelNode) Status() (node.Status, error) { return k.slave.Status() }

func (k *kernelNode) State() node.State { return k.slave.State() }

func (k *kernelNode) Delay() (int, error) { return k.slave.Delay() }

func (k *kernelNode) Prepare() error { return k.slave.Prepare() }

func (k *kernelNode) Reset() error { return k.slave.Reset() }

func (k *kernelNode) Start() error { return k.slave.Start() }

func (k *kernelNode) Drop() error { return k.slave.Drop() }

func (k *kernelNode) Drain() error { return k.slave.Drain() }

func (k *kernelNode) Pause(enable bool) error { return k.slave.Pause(enable) }

func (k *kernelNode) Rewind(frames int) (int, error) { return k.slave.Rewind(frames) }

func (k *kernelNode) AvailUpdate() (int, error) { return k.slave.AvailUpdate() }

func (k *kernelNode) MmapForward(size int) (int, error) { return k.slave.MmapForward(size) }

// --- frame transfer: the actual conversion. ---

func (k *kernelNode) estOutFrames(inFrames int) int {
	n := int(float64(inFrames)*k.ratio + 0.999999)
	if n < 1 {
		n = 1
	}
	return n
}

func (k *kernelNode) estInFrames(outFrames int) int {
	if k.ratio == 0 {
		return outFrames
	}
	n := int(float64(outFrames)/k.ratio + 0.999999)
	if n < 1 {
		n = 1
	}
	return n
}

func deinterleaveInto(blk *dsp.Block, buf []float64, frames, channels int) {
	blk.Samples = dsp.Buffer(blk.Samples, channels, frames)
	blk.Frames = frames
	blk.Channels = channels
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			blk.Samples[c*frames+f] = buf[f*channels+c]
		}
	}
}

func planarInto(blk *dsp.Block, bufs [][]float64, frames, channels int) {
	blk.Samples = dsp.Buffer(blk.Samples, channels, frames)
	blk.Frames = frames
	blk.Channels = channels
	for c := 0; c < channels; c++ {
		copy(blk.Samples[c*frames:c*frames+frames], bufs[c][:frames])
	}
}

func interleaveOut(blk *dsp.Block) []float64 {
	out := make([]float64, blk.Channels*blk.Frames)
	for f := 0; f < blk.Frames; f++ {
		for c := 0; c < blk.Channels; c++ {
			out[f*blk.Channels+c] = blk.Samples[c*blk.Frames+f]
		}
	}
	return out
}

func planarOut(blk *dsp.Block) [][]float64 {
	bufs := make([][]float64, blk.Channels)
	for c := range bufs {
		bufs[c] = blk.Samples[c*blk.Frames : c*blk.Frames+blk.Frames]
	}
	return bufs
}

func (k *kernelNode) WriteI(buf []float64, frames int) (int, error) {
	deinterleaveInto(&k.srcBlk, buf, frames, k.inChannels)
	return k.writeThrough(frames)
}

func (k *kernelNode) WriteN(bufs [][]float64, frames int) (int, error) {
	planarInto(&k.srcBlk, bufs, frames, k.inChannels)
	return k.writeThrough(frames)
}

func (k *kernelNode) writeThrough(frames int) (int, error) {
	out := k.estOutFrames(frames)
	k.dstBlk.Samples = dsp.Buffer(k.dstBlk.Samples, k.outChannels, out)
	k.dstBlk.Frames = out
	k.dstBlk.Channels = k.outChannels
	if err := k.playback.Process(&k.dstBlk, &k.srcBlk); err != nil {
		return 0, err
	}
	if _, err := k.slave.WriteN(planarOut(&k.dstBlk), k.dstBlk.Frames); err != nil {
		return 0, err
	}
	return frames, nil
}

func (k *kernelNode) ReadI(buf []float64, frames int) (int, error) {
	n, err := k.readThrough(frames)
	if err != nil {
		return 0, err
	}
	copy(buf[:n*k.inChannels], interleaveOut(&k.dstBlk)[:n*k.inChannels])
	return n, nil
}

func (k *kernelNode) ReadN(bufs [][]float64, frames int) (int, error) {
	n, err := k.readThrough(frames)
	if err != nil {
		return 0, err
	}
	src := planarOut(&k.dstBlk)
	for c := 0; c < k.inChannels; c++ {
		copy(bufs[c][:n], src[c][:n])
	}
	return n, nil
}

// readThrough pulls from the slave, converts, and leaves the converted
// block in k.dstBlk for the caller to copy out; it returns the number of
// client-side frames actually available, which may be less than frames.
func (k *kernelNode) readThrough(frames int) (int, error) {
	slaveFrames := k.estInFrames(frames)
	slaveBufs := make([][]float64, k.outChannels)
	for c := range slaveBufs {
		slaveBufs[c] = make([]float64, slaveFrames)
	}
	n, err := k.slave.ReadN(slaveBufs, slaveFrames)
	if err != nil {
		return 0, err
	}
	planarInto(&k.srcBlk, slaveBufs, n, k.outChannels)
	out := k.estOutFrames(n)
	if out > frames {
		out = frames
	}
	k.dstBlk.Samples = dsp.Buffer(k.dstBlk.Samples, k.inChannels, out)
	k.dstBlk.Frames = out
	k.dstBlk.Channels = k.inChannels
	if err := k.capture.Process(&k.dstBlk, &k.srcBlk); err != nil {
		return 0, err
	}
	if k.dstBlk.Frames > frames {
		k.dstBlk.Frames = frames
	}
	return k.dstBlk.Frames, nil
}
