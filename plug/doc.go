// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package plug implements the Plug adaptation node of §3-§4.5: it
// presents a requested client-side hardware-parameter tuple while driving
// an arbitrary slave Node, inserting package convert's conversion
// wrappers between the two only where the two sides actually differ.
package plug
