// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"github.com/sndplug/pcm/convert"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/plug"
)

// LoadPlug instantiates a Plug from a configuration tree with the two
// keys §6 recognizes: "slave" (required, resolved via reg) and "ttable"
// (optional, parsed by LoadTTable). Any other key is a configuration
// error. A config-built plug always owns its resolved slave, since the
// tree constructed it.
func LoadPlug(name string, tree map[string]interface{}, reg *Registry) (*plug.Plug, error) {
	for k := range tree {
		if k != "slave" && k != "ttable" {
			return nil, node.Invalid("config: plug: unknown key %q", k)
		}
	}

	slaveRaw, ok := tree["slave"]
	if !ok {
		return nil, node.Invalid("config: plug: missing required key \"slave\"")
	}
	slaveTree, ok := slaveRaw.(map[string]interface{})
	if !ok {
		return nil, node.Invalid("config: plug: \"slave\" must be a subtree")
	}
	slave, err := reg.ResolveSlave(slaveTree)
	if err != nil {
		return nil, err
	}

	var matrix *convert.Matrix
	if ttRaw, ok := tree["ttable"]; ok {
		ttTree, ok := ttRaw.(map[string]interface{})
		if !ok {
			slave.Close()
			return nil, node.Invalid("config: plug: \"ttable\" must be a subtree")
		}
		m, err := LoadTTable(ttTree)
		if err != nil {
			slave.Close()
			return nil, err
		}
		matrix = m
	}

	p, err := plug.Open(name, slave, true, matrix)
	if err != nil {
		slave.Close()
		return nil, err
	}
	return p, nil
}
