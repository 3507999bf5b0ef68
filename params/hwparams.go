// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package params

// Params is the plug parameters record of §3: a four-field tuple used both
// as the client-visible tuple and, as a plug chain is synthesized, as the
// running description of what the next-stage slave would see.
type Params struct {
	Access   Access
	Format   Format
	Channels int
	Rate     int
}

// Equal reports whether p and o describe the same four-tuple.
func (p Params) Equal(o Params) bool {
	return p == o
}

// Info bits cleared/tested on the client side of a refine; see §4.4 cchange.
const (
	InfoMMAP      uint32 = 1 << 0
	InfoMMAPValid uint32 = 1 << 1
)

// Link identifies a hardware-parameter dimension that can be propagated
// ("linked") between two HwParams blocks by Refine.
type Link int

const (
	LinkPeriodTime Link = iota
	LinkTickTime
	LinkPeriodSize
	LinkBufferSize
)

// HwParams is the hardware-parameter container of §6: bitmasks for the
// discrete dimensions (access, format) and intervals for the continuous
// ones (channels, rate, period/buffer size and time). hw_refine narrows an
// HwParams in place without committing to single values; hw_params does.
type HwParams struct {
	AccessMask Mask
	FormatMask Mask
	Channels   Interval
	Rate       Interval
	PeriodSize Interval
	BufferSize Interval
	PeriodTime Interval
	TickTime   Interval
	Info       uint32
}

// AnyHwParams returns an HwParams with every dimension unconstrained, the
// starting point for refining a block "any" before a two-way pass
// (sprepare in §4.4).
func AnyHwParams() HwParams {
	return HwParams{
		AccessMask: Full(AccessCount()),
		FormatMask: Full(FormatCount()),
		Channels:   Any(),
		Rate:       Any(),
		PeriodSize: Any(),
		BufferSize: Any(),
		PeriodTime: Any(),
		TickTime:   Any(),
	}
}

// FromParams returns an HwParams pinned to exactly the given four-tuple,
// with unconstrained period/buffer dimensions — the client side's starting
// point before a refine (cprepare in §4.4 is the identity, but tests and
// the public constructors build this pinned form directly).
func FromParams(p Params) HwParams {
	h := AnyHwParams()
	h.AccessMask = NewMask(int(p.Access))
	h.FormatMask = NewMask(int(p.Format))
	h.Channels = Fixed(float64(p.Channels))
	h.Rate = Fixed(float64(p.Rate))
	return h
}

// Extract reads back the client/slave four-tuple from an HwParams that has
// been refined down to a single value on every dimension; extracting from
// a block with an unpinned Channels/Rate interval or an empty/multi-bit
// mask returns ok=false.
func (h HwParams) Extract() (Params, bool) {
	access, ok := singleSet(h.AccessMask, AccessCount())
	if !ok {
		return Params{}, false
	}
	format, ok := singleSet(h.FormatMask, FormatCount())
	if !ok {
		return Params{}, false
	}
	channels, ok := h.Channels.Value()
	if !ok {
		return Params{}, false
	}
	rate, ok := h.Rate.Value()
	if !ok {
		return Params{}, false
	}
	return Params{
		Access:   Access(access),
		Format:   Format(format),
		Channels: int(channels),
		Rate:     int(rate),
	}, true
}

func singleSet(m Mask, n int) (int, bool) {
	found := -1
	for i := 0; i < n; i++ {
		if m.Test(i) {
			if found != -1 {
				return 0, false
			}
			found = i
		}
	}
	if found == -1 {
		return 0, false
	}
	return found, true
}

// RefineLinked narrows the dimensions named in links on h to their
// intersection with the same dimensions on other. It is the "refine with a
// bitmask of linked dimensions against another block" primitive of §6; the
// first empty intersection is returned as an error (the caller must then
// fail hw_refine/hw_params).
func (h *HwParams) RefineLinked(other *HwParams, links ...Link) error {
	for _, l := range links {
		switch l {
		case LinkPeriodTime:
			if err := h.PeriodTime.Refine(other.PeriodTime); err != nil {
				return err
			}
		case LinkTickTime:
			if err := h.TickTime.Refine(other.TickTime); err != nil {
				return err
			}
		case LinkPeriodSize:
			if err := h.PeriodSize.Refine(other.PeriodSize); err != nil {
				return err
			}
		case LinkBufferSize:
			if err := h.BufferSize.Refine(other.BufferSize); err != nil {
				return err
			}
		}
	}
	return nil
}

// FirstAccess returns the first access layout set in the mask, in
// enumeration order, used when picking the slave access after hw_refine
// has narrowed the slave's access mask to a single workable choice (§4.5
// step e).
func (h HwParams) FirstAccess() (Access, bool) {
	for i := 0; i < AccessCount(); i++ {
		if h.AccessMask.Test(i) {
			return Access(i), true
		}
	}
	return 0, false
}

// RestrictToMMAP narrows the access mask to the single always-present
// non-interleaved mmap layout, per §4.4 schange: "restrict slave's access
// mask to {MMAP}" when any dimension can never agree between client and
// slave.
func (h *HwParams) RestrictToMMAP() {
	h.AccessMask = NewMask(int(AccessMMAPNonInterleaved))
}
