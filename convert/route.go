// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package convert

import (
	"github.com/sndplug/pcm/dsp"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// FullGain is FULL from §4.3: unit gain, no attenuation.
const FullGain = 1.0

// Matrix is the cused x sused transfer matrix of §4.3/§6: Gains[c][s] is
// the gain client channel c contributes to slave channel s on playback,
// and symmetrically the gain slave channel s contributes to client channel
// c on capture.
type Matrix struct {
	Gains    [][]float64
	CUsed    int
	SUsed    int
}

// NewMatrix allocates a zeroed cused x sused matrix.
func NewMatrix(cused, sused int) *Matrix {
	g := make([][]float64, cused)
	for c := range g {
		g[c] = make([]float64, sused)
	}
	return &Matrix{Gains: g, CUsed: cused, SUsed: sused}
}

// SynthesizeMatrix builds the default transfer matrix of §4.3 when none is
// supplied at open: a cyclic diagonal-like assignment of unit-gain entries,
// scaled down on whichever side is the downmix destination.
func SynthesizeMatrix(cchannels, schannels int) *Matrix {
	m := NewMatrix(cchannels, schannels)
	n := cchannels
	if schannels > n {
		n = schannels
	}
	type pair struct{ c, s int }
	entries := make([]pair, 0, n)
	c, s := 0, 0
	for i := 0; i < n; i++ {
		entries = append(entries, pair{c, s})
		c = (c + 1) % cchannels
		s = (s + 1) % schannels
	}
	for _, e := range entries {
		m.Gains[e.c][e.s] = FullGain
	}
	switch {
	case cchannels > schannels:
		// Downmix on playback: scale each slave column by how many client
		// channels feed it.
		srcCount := make([]int, schannels)
		for _, e := range entries {
			srcCount[e.s]++
		}
		for _, e := range entries {
			if srcCount[e.s] > 1 {
				m.Gains[e.c][e.s] = FullGain / float64(srcCount[e.s])
			}
		}
	case schannels > cchannels:
		// Downmix on capture: scale each client row by how many slave
		// channels feed it, symmetric with client as destination.
		srcCount := make([]int, cchannels)
		for _, e := range entries {
			srcCount[e.c]++
		}
		for _, e := range entries {
			if srcCount[e.c] > 1 {
				m.Gains[e.c][e.s] = FullGain / float64(srcCount[e.c])
			}
		}
	}
	return m
}

func (m *Matrix) playbackProcess(dst, src *dsp.Block) error {
	n := src.Frames
	for s := 0; s < m.SUsed; s++ {
		row := dst.Samples[s*n : s*n+n]
		for i := range row {
			row[i] = 0
		}
		for c := 0; c < m.CUsed; c++ {
			g := m.Gains[c][s]
			if g == 0 {
				continue
			}
			in := src.Samples[c*n : c*n+n]
			for i := 0; i < n; i++ {
				row[i] += g * in[i]
			}
		}
	}
	dst.Frames = n
	return nil
}

func (m *Matrix) captureProcess(dst, src *dsp.Block) error {
	n := src.Frames
	for c := 0; c < m.CUsed; c++ {
		row := dst.Samples[c*n : c*n+n]
		for i := range row {
			row[i] = 0
		}
		for s := 0; s < m.SUsed; s++ {
			g := m.Gains[c][s]
			if g == 0 {
				continue
			}
			in := src.Samples[s*n : s*n+n]
			for i := 0; i < n; i++ {
				row[i] += g * in[i]
			}
		}
	}
	dst.Frames = n
	return nil
}

// OpenRoute implements the route factory of §6: a node that maps
// cchannels client channels to schannels slave channels through matrix
// (synthesized per §4.3 if nil), per-sample format already agreed
// (slaveFormat is carried only so the factory shape matches its siblings;
// route operates on the Block's float64 samples regardless of wire
// format).
func OpenRoute(name string, slaveFormat params.Format, slave node.Node, closeSlave bool, cchannels, schannels int, matrix *Matrix) (node.Node, error) {
	if matrix == nil {
		matrix = SynthesizeMatrix(cchannels, schannels)
	}
	playback := dsp.NewProcessor(dsp.FullMode, matrix.playbackProcess)
	capture := dsp.NewProcessor(dsp.FullMode, matrix.captureProcess)
	k := newKernelNode(name, slave, closeSlave, cchannels, schannels, 1.0, playback, capture)
	k.pin = func(h *params.HwParams) { h.Channels = params.Fixed(float64(schannels)) }
	return k, nil
}
