// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package params

// Mask is a bitmask over a small enumeration (Format or Access). Bit i
// corresponds to enumeration value i.
type Mask uint64

// NewMask builds a mask containing exactly the given enumeration values.
func NewMask(vs ...int) Mask {
	var m Mask
	for _, v := range vs {
		m.Set(v)
	}
	return m
}

// Test reports whether v is set in m.
func (m Mask) Test(v int) bool {
	return m&(1<<uint(v)) != 0
}

// Set sets v in m.
func (m *Mask) Set(v int) {
	*m |= 1 << uint(v)
}

// Clear clears v in m.
func (m *Mask) Clear(v int) {
	*m &^= 1 << uint(v)
}

// Empty reports whether no bit is set.
func (m Mask) Empty() bool {
	return m == 0
}

// Intersect restricts m to the bits also set in o.
func (m *Mask) Intersect(o Mask) {
	*m &= o
}

// Any reports whether any of the enumeration values 0..n-1 is set.
func (m Mask) Any(n int) bool {
	for i := 0; i < n; i++ {
		if m.Test(i) {
			return true
		}
	}
	return false
}

// NeverEq reports whether m and o share no common bit, the Mask
// counterpart of Interval.NeverEq used where a dimension is discrete
// (format, access) rather than a range.
func (m Mask) NeverEq(o Mask) bool {
	return m&o == 0
}

// Full returns a mask with every enumeration value 0..n-1 set.
func Full(n int) Mask {
	var m Mask
	for i := 0; i < n; i++ {
		m.Set(i)
	}
	return m
}

// FormatCount is the number of valid Format enumeration values.
func FormatCount() int { return int(formatCount) }

// AccessCount is the number of valid Access enumeration values.
func AccessCount() int { return int(accessCount) }
