// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package plug

import (
	"github.com/sndplug/pcm/convert"
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// stage is one of §4.2's stage functions: given the client target and the
// running slave-side tuple p in front of current, it either leaves things
// untouched (inserted=false) or wraps current in a new node and returns
// the tuple that node now presents.
type stage func(client, p params.Params, current node.Node) (newCurrent node.Node, newP params.Params, inserted bool, err error)

// changeFormat is §4.2's change_format stage.
func changeFormat(client, p params.Params, current node.Node) (node.Node, params.Params, bool, error) {
	if p.Format == client.Format {
		return current, p, false, nil
	}
	if params.IsLinear(p.Format) {
		// Corrected precondition per §9's Open Question: the source's
		// no-conversion test compares client channels against slave
		// channels, not against itself; a format wrapper over a linear
		// slave only belongs here once channels and rate already agree.
		if p.Channels != client.Channels || p.Rate != client.Rate {
			return current, p, false, nil
		}
		n, err := convert.OpenFormat("format", p.Format, current, true, client.Format, p.Channels)
		if err != nil {
			return current, p, false, err
		}
		newP := p
		newP.Format = client.Format
		return n, newP, true, nil
	}
	// Slave is non-linear: wrap by the slave's own codec, landing on the
	// client format if linear, else the canonical intermediate S16.
	target := client.Format
	if !params.IsLinear(target) {
		target = params.FormatS16LE
	}
	n, err := convert.OpenFormat("format", p.Format, current, true, target, p.Channels)
	if err != nil {
		return current, p, false, err
	}
	newP := p
	newP.Format = target
	return n, newP, true, nil
}

// changeChannels is §4.2's change_channels stage. matrix, if non-nil, is
// the ttable supplied at open; only the first occurrence in the stage
// sequence consumes it, the second always synthesizes its own default.
func changeChannels(matrix *convert.Matrix) stage {
	return func(client, p params.Params, current node.Node) (node.Node, params.Params, bool, error) {
		if p.Channels == client.Channels {
			return current, p, false, nil
		}
		if p.Rate != client.Rate && client.Channels > p.Channels {
			// Upmixing waits for the rate stage; the other change_channels
			// occurrence handles it once rates agree.
			return current, p, false, nil
		}
		n, err := convert.OpenRoute("route", p.Format, current, true, client.Channels, p.Channels, matrix)
		if err != nil {
			return current, p, false, err
		}
		newP := p
		newP.Channels = client.Channels
		newP.Access = client.Access
		return n, newP, true, nil
	}
}

// changeRate is §4.2's change_rate stage.
func changeRate(client, p params.Params, current node.Node) (node.Node, params.Params, bool, error) {
	if p.Rate == client.Rate {
		return current, p, false, nil
	}
	if !params.IsLinear(p.Format) {
		return current, p, false, node.Invalid("plug: rate conversion requires a linear slave format")
	}
	n, err := convert.OpenRate("rate", p.Format, current, true, client.Rate, p.Rate, p.Channels)
	if err != nil {
		return current, p, false, err
	}
	newP := p
	newP.Access = client.Access
	newP.Rate = client.Rate
	return n, newP, true, nil
}

// changeAccess is §4.2's change_access stage.
func changeAccess(client, p params.Params, current node.Node) (node.Node, params.Params, bool, error) {
	if p.Access == client.Access {
		return current, p, false, nil
	}
	n, err := convert.OpenAccess("access", p.Format, current, true, client.Access, p.Access, p.Channels)
	if err != nil {
		return current, p, false, err
	}
	newP := p
	newP.Access = client.Access
	return n, newP, true, nil
}

// buildChain runs the fixed stage sequence of §4.2, starting current at
// reqSlave presenting tuple start, until the running tuple equals client
// or a stage errors. On error every wrapper inserted so far is closed and
// the slave is left untouched.
func buildChain(client, start params.Params, reqSlave node.Node, matrix *convert.Matrix) (node.Node, []node.Node, error) {
	stages := []stage{
		changeFormat,
		changeChannels(matrix),
		changeRate,
		changeChannels(nil),
		changeFormat,
		changeAccess,
	}
	p := start
	current := reqSlave
	var chain []node.Node
	teardown := func() {
		for i := len(chain) - 1; i >= 0; i-- {
			chain[i].Close()
		}
	}
	for _, st := range stages {
		if p == client {
			break
		}
		newCurrent, newP, inserted, err := st(client, p, current)
		if err != nil {
			teardown()
			return nil, nil, err
		}
		if inserted {
			chain = append(chain, newCurrent)
			current = newCurrent
			p = newP
		}
	}
	if p != client {
		teardown()
		return nil, nil, node.Invalid("plug: no conversion path from %+v to %+v", start, client)
	}
	return current, chain, nil
}
