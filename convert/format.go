// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package convert

import (
	"math"

	"github.com/sndplug/pcm/dsp"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// quantizeLinear simulates the precision loss of narrowing a float64
// sample, held internally in [-1, 1], to a linear format of the given bit
// width. The actual bit-level codec (byte order, sign, in-memory packing)
// is out of scope per §1; this is the representative effect a linear
// width/sign/endian wrapper has on the signal passing through it.
func quantizeLinear(x float64, width int) float64 {
	if width >= 32 {
		return x
	}
	levels := math.Exp2(float64(width - 1))
	return math.Round(x*levels) / levels
}

// muLawCompand and aLawCompand are the standard G.711 companding curves,
// applied here directly in the float domain rather than as byte codecs,
// consistent with quantizeLinear's simplification.
func muLawCompand(x float64) float64 {
	const mu = 255.0
	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}
	return sign * math.Log1p(mu*x) / math.Log1p(mu)
}

func muLawExpand(y float64) float64 {
	const mu = 255.0
	sign := 1.0
	if y < 0 {
		sign = -1
		y = -y
	}
	return sign * (math.Exp(y*math.Log1p(mu)) - 1) / mu
}

func aLawCompand(x float64) float64 {
	const A = 87.6
	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}
	if x < 1/A {
		return sign * A * x / (1 + math.Log(A))
	}
	return sign * (1 + math.Log(A*x)) / (1 + math.Log(A))
}

func aLawExpand(y float64) float64 {
	const A = 87.6
	sign := 1.0
	if y < 0 {
		sign = -1
		y = -y
	}
	lnA := 1 + math.Log(A)
	if y < 1/lnA {
		return sign * y * lnA / A
	}
	return sign * math.Exp(y*lnA-1) / A
}

// formatForward picks the per-sample companding/quantization function for a
// format, used in the playback (encode) direction; formatInverse is its
// capture (decode) counterpart.
func formatForward(f params.Format) func(float64) float64 {
	switch f {
	case params.FormatMuLaw:
		return muLawCompand
	case params.FormatALaw:
		return aLawCompand
	case params.FormatImaAdpcm:
		// IMA-ADPCM's adaptive-delta state machine is, like the other
		// sample codecs, out of scope; quantizeLinear at 12 bits stands in
		// for its effective resolution.
		return func(x float64) float64 { return quantizeLinear(x, 12) }
	default:
		w := params.Width(f)
		if w == 0 {
			w = 16
		}
		return func(x float64) float64 { return quantizeLinear(x, w) }
	}
}

func formatInverse(f params.Format) func(float64) float64 {
	switch f {
	case params.FormatMuLaw:
		return muLawExpand
	case params.FormatALaw:
		return aLawExpand
	default:
		return func(x float64) float64 { return x }
	}
}

func applyPerSample(fn func(float64) float64) dsp.ProcFunc {
	return func(dst, src *dsp.Block) error {
		n := src.Frames * src.Channels
		for i := 0; i < n; i++ {
			dst.Samples[i] = fn(src.Samples[i])
		}
		dst.Frames = src.Frames
		return nil
	}
}

// OpenFormat implements the format factory of §4.2's change_format stage:
// a node presenting clientFormat to its caller while driving slave at
// slaveFormat, channels wide. Direction is symmetric: playback companders/
// quantizes client samples down to the slave's format, capture expands
// them back.
func OpenFormat(name string, slaveFormat params.Format, slave node.Node, closeSlave bool, clientFormat params.Format, channels int) (node.Node, error) {
	playbackFn := func(x float64) float64 { return formatForward(slaveFormat)(x) }
	captureFn := func(x float64) float64 { return formatInverse(slaveFormat)(x) }
	playback := dsp.NewProcessor(dsp.FullMode, applyPerSample(playbackFn))
	capture := dsp.NewProcessor(dsp.FullMode, applyPerSample(captureFn))
	k := newKernelNode(name, slave, closeSlave, channels, channels, 1.0, playback, capture)
	k.pin = func(h *params.HwParams) { h.FormatMask = params.NewMask(int(slaveFormat)) }
	return k, nil
}
