// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package plug

import (
	"testing"

	"github.com/sndplug/pcm/convert"
	"github.com/sndplug/pcm/fakedev"
	"github.com/sndplug/pcm/params"
)

// device builds a fake slave advertising access, format, channels, rate.
// AccessMMAPNonInterleaved is always included alongside access, matching
// how a real ALSA slave advertises at least one MMAP access mode; this
// lets RestrictToMMAP (triggered whenever schange finds no common value
// on some other dimension) still find a common access layout.
func device(access params.Access, format params.Format, channels, rate int) *fakedev.Device {
	d := fakedev.New("dev")
	d.AccessMask = params.NewMask(int(access), int(params.AccessMMAPNonInterleaved))
	d.FormatMask = params.NewMask(int(format))
	d.Channels = params.Fixed(float64(channels))
	d.Rate = params.Fixed(float64(rate))
	return d
}

func clientBlock(access params.Access, format params.Format, channels, rate int) params.HwParams {
	return params.FromParams(params.Params{Access: access, Format: format, Channels: channels, Rate: rate})
}

// TestPlugIdentity is Testable Property 1: a client tuple the slave
// already accepts builds no wrappers.
func TestPlugIdentity(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("identity", dev, true, nil)
	h := clientBlock(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	if err := pl.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	if len(pl.chain) != 0 {
		t.Fatalf("got %d wrappers, want 0", len(pl.chain))
	}
	if pl.CurrentSlave() != dev {
		t.Fatal("current slave is not the requested slave")
	}
}

// TestS1AccessRepack is scenario S1.
func TestS1AccessRepack(t *testing.T) {
	dev := device(params.AccessMMAPNonInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("s1", dev, true, nil)
	h := clientBlock(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	if err := pl.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	if len(pl.chain) != 1 {
		t.Fatalf("got %d wrappers, want 1", len(pl.chain))
	}
}

// TestS2FormatAndRate is a variant of scenario S2 adapted to this
// module's format enumeration (no FLOAT format): a wide linear format at
// one rate converting to S16LE at another rate, same access and channel
// count, should insert exactly a format wrapper and a rate wrapper.
func TestS2FormatAndRate(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("s2", dev, true, nil)
	h := clientBlock(params.AccessInterleaved, params.FormatS32LE, 2, 44100)
	if err := pl.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	if len(pl.chain) != 2 {
		t.Fatalf("got %d wrappers, want 2", len(pl.chain))
	}
}

// TestS3MuLawUpmixRate is scenario S3.
func TestS3MuLawUpmixRate(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("s3", dev, true, nil)
	h := clientBlock(params.AccessInterleaved, params.FormatMuLaw, 1, 8000)
	if err := pl.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	if len(pl.chain) != 3 {
		t.Fatalf("got %d wrappers, want 3 (format, route, rate)", len(pl.chain))
	}
}

// TestS4Downmix is scenario S4.
func TestS4Downmix(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("s4", dev, true, nil)
	h := clientBlock(params.AccessInterleaved, params.FormatS16LE, 4, 48000)
	if err := pl.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	if len(pl.chain) != 1 {
		t.Fatalf("got %d wrappers, want 1 (route only)", len(pl.chain))
	}
}

// TestS6SuppliedMatrixUsedVerbatim is scenario S6: a supplied ttable is
// used instead of synthesizing one.
func TestS6SuppliedMatrixUsedVerbatim(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 4, 48000)
	m := convert.NewMatrix(2, 4)
	m.Gains[0][0] = 0.5
	m.Gains[0][1] = 0.5
	m.Gains[1][2] = 0.5
	m.Gains[1][3] = 0.5
	pl, _ := Open("s6", dev, true, m)
	h := clientBlock(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	if err := pl.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	if len(pl.chain) != 1 {
		t.Fatalf("got %d wrappers, want 1", len(pl.chain))
	}
}

// TestOwnershipRespectsCloseSlaveFalse is Testable Property 8.
func TestOwnershipRespectsCloseSlaveFalse(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("own", dev, false, nil)
	if err := pl.Close(); err != nil {
		t.Fatal(err)
	}
	if dev.Closed() {
		t.Fatal("closeSlave was false but the requested slave was closed")
	}
}

func TestOwnershipClosesSlaveWhenRequested(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("own2", dev, true, nil)
	if err := pl.Close(); err != nil {
		t.Fatal(err)
	}
	if !dev.Closed() {
		t.Fatal("closeSlave was true but the requested slave was not closed")
	}
}

// TestHwRefineIdempotent is Testable Property 3 at the plug level.
func TestHwRefineIdempotent(t *testing.T) {
	dev := device(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	pl, _ := Open("idem", dev, true, nil)
	first := clientBlock(params.AccessInterleaved, params.FormatS16LE, 2, 48000)
	if err := pl.HwRefine(&first); err != nil {
		t.Fatal(err)
	}
	second := first
	if err := pl.HwRefine(&second); err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("hw_refine not idempotent: first=%+v second=%+v", first, second)
	}
}
