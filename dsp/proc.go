// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dsp

// ChannelMode indicates how channels are processed.
type ChannelMode int

const (
	// MonoMode implies Process(dst, src *Block) has one channel in src and one in dst.
	MonoMode ChannelMode = iota
	// FullMode implies Process(dst, src *Block) has all input channels in src and dst
	// in channel deinterleaved format.
	FullMode
)

// Processor couples the shape and channel mode of a processing function with
// the function itself. Every conversion kernel in package convert (format,
// rate, route, access) is a Processor; a plug chain stage is nothing more
// than a Processor wrapped to satisfy the node.Node contract.
type Processor interface {
	// ChannelMode describes the mode Process is invoked in.
	ChannelMode() ChannelMode

	// NextFrames returns the desired number of source and destination frames,
	// respectively, for the next processing block.
	NextFrames() (int, int)

	// Process processes samples from src to dst.
	//
	// Assuming the last call to NextFrames returned N, M, Process may assume
	//
	//  1. 1 <= src.Frames <= N
	//  2. dst.Frames == M
	//  3. len(src.Samples) = N * src.Channels
	//  4. len(dst.Samples) = M * dst.Channels
	//  5. src.Samples and dst.Samples are in channel deinterleaved format.
	//
	// and must set dst.Frames to the real number of frames written,
	// 0 <= dst.Frames <= M.
	Process(dst, src *Block) error
}

// ProcFunc gives the type of a processing function, with the semantics of
// Process in the Processor interface.
type ProcFunc func(dst, src *Block) error

type proc struct {
	mode      ChannelMode
	inFrames  int
	outFrames int
	procFunc  ProcFunc
}

const (
	// DefaultInFrames is the default input block size of a processor, in frames.
	DefaultInFrames = 1024
	// DefaultOutFrames is the default output block size of a processor, in frames.
	DefaultOutFrames = 1024
)

// NewProcessor creates a new processor with default frames using channel
// mode mode.
func NewProcessor(mode ChannelMode, fn ProcFunc) Processor {
	return NewProcessorFrames(mode, fn, DefaultInFrames, DefaultOutFrames)
}

// NewProcessorFrames is like NewProcessor but allows specifying the input
// and output block sizes.
func NewProcessorFrames(mode ChannelMode, fn ProcFunc, ifrms, ofrms int) Processor {
	return &proc{
		mode:      mode,
		inFrames:  ifrms,
		outFrames: ofrms,
		procFunc:  fn}
}

func (p *proc) Process(dst, src *Block) error {
	return p.procFunc(dst, src)
}

func (p *proc) ChannelMode() ChannelMode {
	return p.mode
}

func (p *proc) NextFrames() (int, int) {
	return p.inFrames, p.outFrames
}

// PassThrough is a no-op processor: dst receives a verbatim copy of src.
// It is the identity stage conversion kernels fall back on when client and
// slave sides already agree.
var PassThrough = NewProcessor(FullMode, func(dst, src *Block) error {
	n := src.Frames
	copy(dst.Samples[:n*src.Channels], src.Samples[:n*src.Channels])
	dst.Frames = n
	return nil
})
