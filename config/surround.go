// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/surround"
)

// LoadSurround instantiates a Surround from a configuration tree with
// §6's three recognized keys: "card" (required), "device" (optional,
// default 0), and "type" (optional, default 4.0). Per §9's Open
// Question, "type" is treated as a recognized key here rather than the
// source's early skip-set that never actually consumes it — any other
// key is still a configuration error.
func LoadSurround(name string, tree map[string]interface{}, reg *Registry) (*surround.Surround, error) {
	for k := range tree {
		switch k {
		case "card", "device", "type":
		default:
			return nil, node.Invalid("config: surround: unknown key %q", k)
		}
	}

	cardRaw, ok := tree["card"]
	if !ok {
		return nil, node.Invalid("config: surround: missing required key \"card\"")
	}
	card, err := reg.ResolveCard(cardRaw)
	if err != nil {
		return nil, err
	}

	device := 0
	if devRaw, ok := tree["device"]; ok {
		d, ok := toInt(devRaw)
		if !ok {
			return nil, node.Invalid("config: surround: \"device\" must be an integer")
		}
		device = d
	}

	channels, pcms := 4, 2
	if typeRaw, ok := tree["type"]; ok {
		typeStr, ok := typeRaw.(string)
		if !ok {
			return nil, node.Invalid("config: surround: \"type\" must be a string")
		}
		switch typeStr {
		case "40", "4.0":
			channels, pcms = 4, 2
		case "51", "5.1":
			channels, pcms = 6, 3
		default:
			return nil, node.Invalid("config: surround: unrecognized type %q", typeStr)
		}
	}

	pcmNodes := make([]node.Node, 0, pcms)
	for i := 0; i < pcms; i++ {
		n, err := reg.resolveCardDevice(card, device, i)
		if err != nil {
			for _, p := range pcmNodes {
				p.Close()
			}
			return nil, err
		}
		pcmNodes = append(pcmNodes, n)
	}

	s, err := surround.Open(name, card, device, channels, pcmNodes)
	if err != nil {
		for _, p := range pcmNodes {
			p.Close()
		}
		return nil, err
	}
	return s, nil
}
