// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package surround

import (
	"testing"

	"github.com/sndplug/pcm/fakedev"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

func stereoSlave(name string) *fakedev.Device {
	d := fakedev.New(name)
	d.AccessMask = params.NewMask(int(params.AccessInterleaved))
	d.FormatMask = params.NewMask(int(params.FormatS16LE))
	d.Channels = params.Fixed(2)
	d.Rate = params.Fixed(48000)
	return d
}

func TestOpenRejectsBadChannelCount(t *testing.T) {
	if _, err := Open("s", 0, 0, 5, []node.Node{stereoSlave("a"), stereoSlave("b")}); err == nil {
		t.Fatal("expected error for a 5-channel request")
	}
}

func TestOpenRejectsTooFewSlavesForChannels(t *testing.T) {
	if _, err := Open("s", 0, 0, 6, []node.Node{stereoSlave("a"), stereoSlave("b")}); err == nil {
		t.Fatal("expected error: two stereo slaves cannot cover 6 channels")
	}
}

// TestChannelCoercion is Testable Property 6.
func TestChannelCoercion(t *testing.T) {
	a, b := stereoSlave("a"), stereoSlave("b")
	s, err := Open("s4", 0, 0, 4, []node.Node{a, b})
	if err != nil {
		t.Fatal(err)
	}
	h := params.AnyHwParams()
	h.Channels = params.Interval{Min: 1, Max: 8, Integer: true}
	if err := s.HwRefine(&h); err != nil {
		t.Fatal(err)
	}
	if v, ok := h.Channels.Value(); !ok || v != 4 {
		t.Fatalf("logical channels = %+v, want pinned to 4", h.Channels)
	}
}

func TestChannelInfoDispatch(t *testing.T) {
	a, b, c := stereoSlave("a"), stereoSlave("b"), stereoSlave("c")
	s, err := Open("s6", 0, 0, 6, []node.Node{a, b, c})
	if err != nil {
		t.Fatal(err)
	}
	for ch := 0; ch < 6; ch++ {
		ci, err := s.ChannelInfo(ch)
		if err != nil {
			t.Fatalf("channel %d: %v", ch, err)
		}
		if ci.Channel != ch%2 {
			t.Fatalf("channel %d: got local channel %d, want %d", ch, ci.Channel, ch%2)
		}
	}
}

// TestWriteNAgreement and TestWriteNDisagreementBroken are Testable
// Property 7 and scenario S5.
func TestWriteNAgreement(t *testing.T) {
	a, b := stereoSlave("a"), stereoSlave("b")
	s, _ := Open("s5a", 0, 0, 4, []node.Node{a, b})
	bufs := [][]float64{make([]float64, 1024), make([]float64, 1024), make([]float64, 1024), make([]float64, 1024)}
	n, err := s.WriteN(bufs, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1024 {
		t.Fatalf("got %d, want 1024", n)
	}
}

func TestWriteNDisagreementBroken(t *testing.T) {
	a, b := stereoSlave("a"), stereoSlave("b")
	b.ShortWrite = 1000
	s, _ := Open("s5b", 0, 0, 4, []node.Node{a, b})
	bufs := [][]float64{make([]float64, 1024), make([]float64, 1024), make([]float64, 1024), make([]float64, 1024)}
	if _, err := s.WriteN(bufs, 1024); err == nil {
		t.Fatal("expected a broken-stream error on disagreement")
	}
	if s.State() != node.StateBroken {
		t.Fatalf("state = %v, want StateBroken", s.State())
	}
	if err := s.Prepare(); err != nil {
		t.Fatal(err)
	}
	if s.State() == node.StateBroken {
		t.Fatal("Prepare did not clear the broken latch")
	}
}

func TestWriteIRejectedAcrossMultipleSlaves(t *testing.T) {
	a, b := stereoSlave("a"), stereoSlave("b")
	s, _ := Open("s", 0, 0, 4, []node.Node{a, b})
	if _, err := s.WriteI(make([]float64, 4), 1); err == nil {
		t.Fatal("expected not-implemented for interleaved write across multiple slaves")
	}
}

func TestReadRejectedAlways(t *testing.T) {
	s, _ := Open("s", 0, 0, 4, []node.Node{stereoSlave("a"), stereoSlave("b")})
	if _, err := s.ReadI(make([]float64, 4), 1); err == nil {
		t.Fatal("expected capture to be rejected")
	}
	if _, err := s.ReadN(make([][]float64, 4), 1); err == nil {
		t.Fatal("expected capture to be rejected")
	}
}

// TestCloseClosesAllSlaves is Testable Property 8's surround half.
func TestCloseClosesAllSlaves(t *testing.T) {
	a, b := stereoSlave("a"), stereoSlave("b")
	s, _ := Open("s", 0, 0, 4, []node.Node{a, b})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !a.Closed() || !b.Closed() {
		t.Fatal("closing a surround must close every member slave")
	}
}

func TestAsyncDelegatesToPrimarySlaveOnly(t *testing.T) {
	a, b := stereoSlave("a"), stereoSlave("b")
	s, _ := Open("s", 0, 0, 4, []node.Node{a, b})
	if err := s.Async(1, 1); err != nil {
		t.Fatal(err)
	}
}
