// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package params provides the client/slave parameter tuple, the format and
// access enumerations, the slave-format selection algorithm, and the
// hardware-parameter container (masks and intervals with two-way refine)
// that package plug and package surround negotiate against.
package params
