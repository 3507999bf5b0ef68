// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package surround

import (
	"github.com/sndplug/pcm/node"
	"github.com/sndplug/pcm/params"
)

// coerceChannels is §4.6's channel-interval enforcement: the logical
// channel count is always exactly c, never a range. In refining mode any
// interval that contains c narrows to it; in non-refining mode (hw_params)
// the interval must already be pinned to exactly c with closed endpoints.
func coerceChannels(iv params.Interval, c int, refining bool) (params.Interval, error) {
	if iv.Empty {
		return iv, node.Invalid("surround: channel interval is empty")
	}
	fc := float64(c)
	if !refining {
		if iv.OpenMin || iv.OpenMax {
			return iv, node.Invalid("surround: open channel endpoint in hw_params")
		}
		if iv.Min != fc || iv.Max != fc {
			return iv, node.Invalid("surround: channel interval [%v,%v] does not resolve to %d", iv.Min, iv.Max, c)
		}
		return params.Fixed(fc), nil
	}
	if iv.Min > fc || iv.Max < fc {
		return iv, node.Invalid("surround: %d channels outside interval [%v,%v]", c, iv.Min, iv.Max)
	}
	return params.Fixed(fc), nil
}

// slaveChannels is the interval each member slave sees: always {2} when
// the aggregator fans out across more than one stereo slave, else the
// logical channel count itself for the native pcms == 1 fast path.
func (s *Surround) slaveChannels() params.Interval {
	if len(s.pcms) != 1 {
		return params.Fixed(2)
	}
	return params.Fixed(float64(s.channels))
}
