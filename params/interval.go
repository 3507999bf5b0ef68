// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package params

import "errors"

// ErrEmptyInterval is returned by Refine when two intervals share no
// common value.
var ErrEmptyInterval = errors.New("params: interval refine produced an empty interval")

// Interval is a closed or half-open range of values for an interval-typed
// hardware parameter (rate, channels, period/buffer size or time).
// Integer marks a dimension whose values must be whole numbers (frame and
// channel counts); it is false for a dimension mid-scaling by MulDiv until
// Floor re-establishes it.
type Interval struct {
	Min, Max         float64
	OpenMin, OpenMax bool
	Empty            bool
	Integer          bool
}

// Fixed returns an Interval pinned to exactly v.
func Fixed(v float64) Interval {
	return Interval{Min: v, Max: v, Integer: true}
}

// Any returns the unconstrained, unbounded interval.
func Any() Interval {
	return Interval{Min: 0, Max: 1 << 62, Integer: true}
}

// Copy returns a value copy of iv (Interval has no pointer fields, so this
// is mostly documentation of intent at call sites that mirror the source's
// explicit snd_interval_copy).
func (iv Interval) Copy() Interval {
	return iv
}

// Unfloor marks iv as real-valued (non-integer) so a subsequent MulDiv
// shrinking it does not first snap a half-open minimum up to the next
// integer; §4.4 calls this before scaling a buffer-size interval down by a
// rate ratio so the low endpoint scales conservatively rather than
// optimistically.
func (iv Interval) Unfloor() Interval {
	iv.Integer = false
	return iv
}

// Floor rounds iv to a closed, integer interval: an open bound becomes a
// closed bound one step tighter, and Integer is set.
func (iv Interval) Floor() Interval {
	if iv.Empty {
		return iv
	}
	if iv.OpenMin {
		iv.Min++
		iv.OpenMin = false
	}
	if iv.OpenMax {
		iv.Max--
		iv.OpenMax = false
	}
	iv.Min = float64(int64(iv.Min))
	iv.Max = float64(int64(iv.Max))
	iv.Integer = true
	if iv.Min > iv.Max {
		iv.Empty = true
	}
	return iv
}

// MulDiv scales iv by the ratio num/den of two other intervals, taking the
// outermost bound on each side (smallest numerator over largest
// denominator for the minimum, largest over smallest for the maximum) so
// the result contains every value the true scaled range can take:
// min' = min*num.min/den.max, max' = max*num.max/den.min.
func (iv Interval) MulDiv(num, den Interval) Interval {
	if iv.Empty || num.Empty || den.Empty || den.Max == 0 || den.Min == 0 {
		return Interval{Empty: true}
	}
	res := Interval{
		Min:     iv.Min * num.Min / den.Max,
		Max:     iv.Max * num.Max / den.Min,
		OpenMin: iv.OpenMin || num.OpenMin || den.OpenMax,
		OpenMax: iv.OpenMax || num.OpenMax || den.OpenMin,
		Integer: iv.Integer && num.Integer && den.Integer,
	}
	if res.Min > res.Max {
		res.Empty = true
	}
	return res
}

// representative picks a single value inside iv to refine another interval
// near: the pinned value if iv is already a point, else its midpoint.
func (iv Interval) representative() float64 {
	if iv.Min == iv.Max {
		return iv.Min
	}
	return (iv.Min + iv.Max) / 2
}

// RefineNear narrows iv to the single feasible value closest to target's
// representative value: if that value lies within iv, iv is pinned to it;
// otherwise iv is pinned to whichever of its own bounds is nearest.
func (iv *Interval) RefineNear(target Interval) {
	if iv.Empty {
		return
	}
	v := target.representative()
	switch {
	case v <= iv.Min:
		iv.Max, iv.OpenMax = iv.Min, iv.OpenMin
	case v >= iv.Max:
		iv.Min, iv.OpenMin = iv.Max, iv.OpenMax
	default:
		iv.Min, iv.Max = v, v
		iv.OpenMin, iv.OpenMax = false, false
	}
}

// Refine narrows iv to its intersection with other, the constraint-
// propagation primitive every hw_refine pass is built from. It returns
// ErrEmptyInterval (and marks iv empty) if the intersection is empty.
func (iv *Interval) Refine(other Interval) error {
	if iv.Empty || other.Empty {
		iv.Empty = true
		return ErrEmptyInterval
	}
	min, openMin := iv.Min, iv.OpenMin
	if other.Min > min || (other.Min == min && other.OpenMin && !openMin) {
		min, openMin = other.Min, other.OpenMin
	}
	max, openMax := iv.Max, iv.OpenMax
	if other.Max < max || (other.Max == max && other.OpenMax && !openMax) {
		max, openMax = other.Max, other.OpenMax
	}
	if min > max || (min == max && (openMin || openMax)) {
		iv.Empty = true
		return ErrEmptyInterval
	}
	iv.Min, iv.OpenMin = min, openMin
	iv.Max, iv.OpenMax = max, openMax
	iv.Integer = iv.Integer && other.Integer
	return nil
}

// AlwaysEq reports whether iv and other are pinned to the same single
// value, i.e. the dimension they describe can only ever agree.
func (iv Interval) AlwaysEq(other Interval) bool {
	return !iv.Empty && !other.Empty &&
		iv.Min == iv.Max && other.Min == other.Max &&
		iv.Min == other.Min && !iv.OpenMin && !other.OpenMin
}

// NeverEq reports whether iv and other share no common value at all.
func (iv Interval) NeverEq(other Interval) bool {
	if iv.Empty || other.Empty {
		return true
	}
	if iv.Max < other.Min || (iv.Max == other.Min && (iv.OpenMax || other.OpenMin)) {
		return true
	}
	if other.Max < iv.Min || (other.Max == iv.Min && (other.OpenMax || iv.OpenMin)) {
		return true
	}
	return false
}

// Value returns the single value iv is pinned to, and whether iv is in
// fact pinned to exactly one value.
func (iv Interval) Value() (float64, bool) {
	return iv.Min, !iv.Empty && iv.Min == iv.Max && !iv.OpenMin && !iv.OpenMax
}
