// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dsp holds the small sample-block/processor abstraction shared by
// every conversion kernel in package convert. It does not know about PCM
// access layouts, hardware parameters, or chains; it is the plumbing a
// conversion stage is built from.
package dsp

import "zikichombo.org/sound/freq"

// Block is one block of channel-deinterleaved samples: Samples[c*Frames+f]
// is channel c, frame f.
type Block struct {
	Samples    []float64
	Frames     int    // set by the processor on return
	Channels   int    // read only, static for the life of a Block
	SampleRate freq.T // read only, static for the life of a Block
}

// Buffer grows d, if needed, to hold c channels of f frames and returns the
// resized slice truncated to exactly c*f elements.
func Buffer(d []float64, c, f int) []float64 {
	n := c * f
	if cap(d) < n {
		tmp := make([]float64, (5*n)/3)
		copy(tmp, d)
		d = tmp
	}
	return d[:n]
}
