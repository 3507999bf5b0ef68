// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package convert holds the conversion-wrapper collaborators §6 describes
// as external to plug and surround: format, rate, route and access. Each
// is obtained from a factory of the fixed shape open(name, slaveFormat,
// slave, closeSlave, ...) (node.Node, error): on success the returned node
// wraps slave and presents the client-side shape on its fast-ops table; on
// failure slave is untouched and still owned by the caller.
//
// All four kernels share one plumbing type, kernelNode, built on package
// dsp's Block/Processor abstraction: a kernel is nothing more than a pair
// of Processors (one per transfer direction) wrapped to satisfy
// node.Node. What differs between format, rate, route and access is only
// which Processor pair Open builds and what channel counts/frame ratio it
// runs at.
package convert
