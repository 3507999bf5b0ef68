// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package config implements §6's configuration surface: a plug node is
// instantiated from a tree with "slave"/"ttable" keys, a surround node
// from one with "card"/"device"/"type" keys. The tree itself is whatever
// gopkg.in/yaml.v3 decodes a YAML document into (map[string]interface{}
// nodes, slices, scalars); this package knows only the shape of those two
// configuration surfaces, not the file format they arrived in. Resolving
// a "slave" subtree or a "card" index to an actual node.Node is left to a
// caller-supplied Registry, since card/device enumeration is out of scope
// per spec.md §1.
package config
