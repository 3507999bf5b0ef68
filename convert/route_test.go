// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package convert

import "testing"

// TestMatrixConservationDownmix is Testable Property 5's downmix case:
// column sums equal FULL.
func TestMatrixConservationDownmix(t *testing.T) {
	m := SynthesizeMatrix(4, 2)
	for s := 0; s < m.SUsed; s++ {
		var sum float64
		for c := 0; c < m.CUsed; c++ {
			sum += m.Gains[c][s]
		}
		if sum != FullGain {
			t.Fatalf("column %d sums to %v, want %v", s, sum, FullGain)
		}
	}
}

// TestMatrixConservationUpmix is Testable Property 5's upmix case: every
// source row sums to FULL.
func TestMatrixConservationUpmix(t *testing.T) {
	m := SynthesizeMatrix(1, 2)
	for c := 0; c < m.CUsed; c++ {
		var sum float64
		for s := 0; s < m.SUsed; s++ {
			sum += m.Gains[c][s]
		}
		if sum != FullGain {
			t.Fatalf("row %d sums to %v, want %v", c, sum, FullGain)
		}
	}
}

// TestMatrixS3Upmix is scenario S3's channel router: 1->2, matrix
// [[FULL],[FULL]] i.e. both destinations receive the sole source at unit
// gain.
func TestMatrixS3Upmix(t *testing.T) {
	m := SynthesizeMatrix(1, 2)
	if m.Gains[0][0] != FullGain || m.Gains[0][1] != FullGain {
		t.Fatalf("got %v, want both destinations at FULL", m.Gains)
	}
}

// TestMatrixS4Downmix is scenario S4's channel router: 4->2, each source
// contributes FULL/2 to exactly one destination.
func TestMatrixS4Downmix(t *testing.T) {
	m := SynthesizeMatrix(4, 2)
	for c := 0; c < 4; c++ {
		var nonzero int
		for s := 0; s < 2; s++ {
			if m.Gains[c][s] != 0 {
				nonzero++
				if m.Gains[c][s] != FullGain/2 {
					t.Fatalf("source %d: gain %v, want %v", c, m.Gains[c][s], FullGain/2)
				}
			}
		}
		if nonzero != 1 {
			t.Fatalf("source %d feeds %d destinations, want 1", c, nonzero)
		}
	}
}

func TestMatrixPlaybackApply(t *testing.T) {
	m := SynthesizeMatrix(1, 2)
	playback := func(dst, src []float64) {
		for s := 0; s < 2; s++ {
			dst[s] = m.Gains[0][s] * src[0]
		}
	}
	var dst [2]float64
	playback(dst[:], []float64{1.0})
	if dst[0] != 1.0 || dst[1] != 1.0 {
		t.Fatalf("got %v, want both channels at 1.0", dst)
	}
}
