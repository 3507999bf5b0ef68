// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package fakedev

import (
	"testing"

	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

func TestHwParamsPinsAndRoundtrips(t *testing.T) {
	d := New("dev")
	h := params.FromParams(params.Params{Access: params.AccessInterleaved, Format: params.FormatS16LE, Channels: 2, Rate: 48000})
	if err := d.HwParams(&h); err != nil {
		t.Fatal(err)
	}
	n, err := d.WriteN([][]float64{{1, 2}, {3, 4}}, 2)
	if err != nil || n != 2 {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	out := [][]float64{make([]float64, 2), make([]float64, 2)}
	n, err = d.ReadN(out, 2)
	if err != nil || n != 2 || out[0][0] != 1 || out[1][1] != 4 {
		t.Fatalf("read back %v, n=%d, err=%v", out, n, err)
	}
}

func TestShortWriteDisagrees(t *testing.T) {
	d := New("dev")
	d.ShortWrite = 5
	n, err := d.WriteN([][]float64{make([]float64, 10)}, 10)
	if err != nil || n != 5 {
		t.Fatalf("n=%d err=%v, want 5", n, err)
	}
}

func TestCloseMarksClosed(t *testing.T) {
	d := New("dev")
	if d.Closed() {
		t.Fatal("new device reports closed")
	}
	_ = d.Close()
	if !d.Closed() {
		t.Fatal("Close did not mark device closed")
	}
	_ = node.Node(d)
}
