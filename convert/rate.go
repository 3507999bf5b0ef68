// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package convert

import (
	"github.com/sndplug/pcm/dsp"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// resample linearly interpolates one channel's n-sample src into an
// m-sample dst; rate-conversion quality and latency are explicitly out of
// scope per §1, so this is a representative kernel, not a production
// resampler.
func resample(dst, src []float64, n, m int) {
	if m == 0 {
		return
	}
	if n == 1 {
		for i := 0; i < m; i++ {
			dst[i] = src[0]
		}
		return
	}
	step := float64(n-1) / float64(maxInt(m-1, 1))
	for i := 0; i < m; i++ {
		pos := step * float64(i)
		lo := int(pos)
		if lo >= n-1 {
			dst[i] = src[n-1]
			continue
		}
		frac := pos - float64(lo)
		dst[i] = src[lo]*(1-frac) + src[lo+1]*frac
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func resampleBlock(dst, src *dsp.Block) error {
	for c := 0; c < src.Channels; c++ {
		resample(dst.Samples[c*dst.Frames:c*dst.Frames+dst.Frames], src.Samples[c*src.Frames:c*src.Frames+src.Frames], src.Frames, dst.Frames)
	}
	return nil
}

// OpenRate implements the rate factory of §4.2's change_rate stage: a node
// presenting clientRate to its caller while driving slave at slaveRate,
// channels wide. slaveFormat is carried only to match the shared factory
// shape; the rate kernel does not itself touch sample format.
func OpenRate(name string, slaveFormat params.Format, slave node.Node, closeSlave bool, clientRate, slaveRate int, channels int) (node.Node, error) {
	ratio := float64(slaveRate) / float64(clientRate)
	playback := dsp.NewProcessor(dsp.FullMode, resampleBlock)
	capture := dsp.NewProcessor(dsp.FullMode, resampleBlock)
	k := newKernelNode(name, slave, closeSlave, channels, channels, ratio, playback, capture)
	k.pin = func(h *params.HwParams) { h.Rate = params.Fixed(float64(slaveRate)) }
	return k, nil
}
