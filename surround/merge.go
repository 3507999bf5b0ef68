// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package surround

import "github.com/sndplug/pcm/params"

// mergeBack folds a member slave's refined block sp back into the
// logical block p, on every dimension except Channels (which the caller
// always re-pins to the logical count): §3 requires every slave to share
// format, rate, and frame-alignment, so the logical view narrows to what
// every slave in turn can still accept.
func mergeBack(p, sp *params.HwParams) error {
	p.AccessMask.Intersect(sp.AccessMask)
	p.FormatMask.Intersect(sp.FormatMask)
	if err := p.Rate.Refine(sp.Rate); err != nil {
		return err
	}
	if err := p.PeriodSize.Refine(sp.PeriodSize); err != nil {
		return err
	}
	if err := p.BufferSize.Refine(sp.BufferSize); err != nil {
		return err
	}
	if err := p.PeriodTime.Refine(sp.PeriodTime); err != nil {
		return err
	}
	if err := p.TickTime.Refine(sp.TickTime); err != nil {
		return err
	}
	p.Info &= sp.Info
	return nil
}
