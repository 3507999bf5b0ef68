// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package surround implements the Surround aggregator of §3/§4.6-4.8: one
// logical 4.0 or 6-channel (5.1) stream fanned out across up to three
// stereo slave Nodes (front, rear, center+LFE), or driven straight through
// a single natively-multichannel slave when pcms == 1.
package surround
