// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"github.com/sndplug/pcm/convert"
	"github.com/sndplug/pcm/node"
)

// MaxChannels is the source's MAX_CHANNELS bound on the ttable loader: a
// supplied matrix's cused/sused dimensions may not exceed it.
const MaxChannels = 32

// LoadTTable parses a "ttable" subtree into a cused x sused convert.Matrix,
// per §6: required "cused"/"sused" integer dimensions and a "matrix" key
// holding cused rows of sused gain entries each.
func LoadTTable(tree map[string]interface{}) (*convert.Matrix, error) {
	cusedRaw, ok := tree["cused"]
	if !ok {
		return nil, node.Invalid("config: ttable: missing required key \"cused\"")
	}
	cused, ok := toInt(cusedRaw)
	if !ok {
		return nil, node.Invalid("config: ttable: \"cused\" must be an integer")
	}
	susedRaw, ok := tree["sused"]
	if !ok {
		return nil, node.Invalid("config: ttable: missing required key \"sused\"")
	}
	sused, ok := toInt(susedRaw)
	if !ok {
		return nil, node.Invalid("config: ttable: \"sused\" must be an integer")
	}
	if cused <= 0 || cused > MaxChannels || sused <= 0 || sused > MaxChannels {
		return nil, node.Invalid("config: ttable: cused/sused must be in (0,%d], got %d/%d", MaxChannels, cused, sused)
	}
	rowsRaw, ok := tree["matrix"]
	if !ok {
		return nil, node.Invalid("config: ttable: missing required key \"matrix\"")
	}
	rows, ok := rowsRaw.([]interface{})
	if !ok || len(rows) != cused {
		return nil, node.Invalid("config: ttable: \"matrix\" must have %d rows", cused)
	}
	m := convert.NewMatrix(cused, sused)
	for c, rowRaw := range rows {
		row, ok := rowRaw.([]interface{})
		if !ok || len(row) != sused {
			return nil, node.Invalid("config: ttable: row %d must have %d entries", c, sused)
		}
		for s, vRaw := range row {
			v, ok := toFloat(vRaw)
			if !ok {
				return nil, node.Invalid("config: ttable: entry [%d][%d] must be numeric", c, s)
			}
			m.Gains[c][s] = v
		}
	}
	return m, nil
}
