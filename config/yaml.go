// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package config

import (
	"gopkg.in/yaml.v3"

	"github.com/sndplug/pcm/node"
)

// DecodeTree decodes a YAML document into the map[string]interface{} tree
// LoadPlug/LoadSurround operate on; yaml.v3 natively unmarshals mapping
// nodes into string keys, unlike v2's map[interface{}]interface{}, which
// is why this module carries v3.
func DecodeTree(data []byte) (map[string]interface{}, error) {
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, node.Invalid("config: invalid YAML: %v", err)
	}
	return tree, nil
}
