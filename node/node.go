// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package node defines the uniform PCM stream object §2 describes: a slow
// operations table (open/close, info, hw_refine, hw_params, hw_free,
// sw_params, channel_info, dump, nonblock, async, mmap, munmap) and a fast
// operations table (status/state/delay/prepare/reset/start/drop/drain/
// pause/rewind/writei/writen/readi/readn/avail_update/mmap_forward). A
// plug or surround node implements both tables by delegating to zero or
// more downstream slave Nodes; package convert's conversion wrappers and
// package fakedev's in-memory device are themselves Nodes.
package node

import (
	"github.com/sndplug/pcm/params"
)

// Stream distinguishes playback from capture.
type Stream int

const (
	StreamPlayback Stream = iota
	StreamCapture
)

// State mirrors the generic PCM lifecycle state exposed by Status/State;
// its transitions (open -> prepared -> running -> ...) are generic PCM
// machinery and out of scope here except for the one state every node in
// this module must be able to report: Broken, entered after a surround
// fan-out disagreement until the next Prepare.
type State int

const (
	StateOpen State = iota
	StatePrepared
	StateRunning
	StateXRun
	StateDraining
	StatePaused
	StateSuspended
	StateBroken
)

// Info describes a node's identity, as returned by the slow Info
// operation. Card/device enumeration itself is out of scope; Info is the
// minimal shape plug and surround need to synthesize or forward one.
type Info struct {
	ID      string
	Name    string
	Subname string
	Card    int
	Device  int
	Stream  Stream
}

// Status is the snapshot Status returns; generic PCM status/pointer
// mechanics beyond these fields are out of scope.
type Status struct {
	State     State
	AvailMax  int
	DelayFrms int
}

// ChannelInfo describes one channel's buffer placement, as returned by the
// slow ChannelInfo operation; the mmap mechanics it would normally report
// are out of scope here, it exists so plug/surround's channel_info
// fan-out/delegation is expressible and testable.
type ChannelInfo struct {
	Channel int
	Offset  int
	First   int
	Step    int
}

// SwParams is a placeholder for the software-parameter block sw_params
// operates on; its field set is generic PCM lifecycle machinery out of
// scope for this module, so it is opaque here and simply fanned out.
type SwParams struct {
	StartThreshold int
	StopThreshold  int
}

// SlowOps is the slow operations table of §2.
type SlowOps interface {
	Close() error
	Info() (Info, error)
	HwRefine(p *params.HwParams) error
	HwParams(p *params.HwParams) error
	HwFree() error
	SwParams(p SwParams) error
	ChannelInfo(channel int) (ChannelInfo, error)
	Dump() string
	NonBlock(nonblock bool) error
	Async(sig, pid int) error
	Mmap() error
	Munmap() error
}

// FastOps is the fast operations table of §2. Frame buffers are always
// channel-deinterleaved []float64; WriteI/ReadI additionally carry the
// interleaved client buffer as a single []float64 of length frames*channels.
type FastOps interface {
	Status() (Status, error)
	State() State
	Delay() (int, error)
	Prepare() error
	Reset() error
	Start() error
	Drop() error
	Drain() error
	Pause(enable bool) error
	Rewind(frames int) (int, error)
	WriteI(buf []float64, frames int) (int, error)
	WriteN(bufs [][]float64, frames int) (int, error)
	ReadI(buf []float64, frames int) (int, error)
	ReadN(bufs [][]float64, frames int) (int, error)
	AvailUpdate() (int, error)
	MmapForward(size int) (int, error)
}

// Node is the uniform stream object: every plug chain link, every
// surround slave, and every leaf device implements it.
type Node interface {
	SlowOps
	FastOps
}
