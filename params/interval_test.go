// Copyright 2018 The ZikiChombo Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package params

import (
	"testing"

	"pgregory.net/rapid"
)

func intervalGen() *rapid.Generator[Interval] {
	return rapid.Custom(func(t *rapid.T) Interval {
		a := rapid.Float64Range(0, 200000).Draw(t, "a")
		b := rapid.Float64Range(0, 200000).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		return Interval{Min: a, Max: b, Integer: true}
	})
}

// TestRefineIdempotent is Testable Property 3 at the interval level:
// refining twice with the same other interval yields the same result as
// refining once.
func TestRefineIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := intervalGen().Draw(t, "a")
		b := intervalGen().Draw(t, "b")
		once := a
		_ = once.Refine(b)
		twice := once
		_ = twice.Refine(b)
		if once != twice {
			t.Fatalf("refine not idempotent: once=%+v twice=%+v", once, twice)
		}
	})
}

func TestRefineIntersects(t *testing.T) {
	a := Interval{Min: 10, Max: 100, Integer: true}
	b := Interval{Min: 50, Max: 200, Integer: true}
	if err := a.Refine(b); err != nil {
		t.Fatal(err)
	}
	if a.Min != 50 || a.Max != 100 {
		t.Fatalf("got [%v,%v], want [50,100]", a.Min, a.Max)
	}
}

func TestRefineEmptyOnDisjoint(t *testing.T) {
	a := Interval{Min: 10, Max: 20, Integer: true}
	b := Interval{Min: 30, Max: 40, Integer: true}
	if err := a.Refine(b); err != ErrEmptyInterval {
		t.Fatalf("got err=%v, want ErrEmptyInterval", err)
	}
	if !a.Empty {
		t.Fatal("expected a to be marked empty")
	}
}

func TestFloorRoundsOpenBoundsIn(t *testing.T) {
	iv := Interval{Min: 10, Max: 20, OpenMax: true}
	got := iv.Floor()
	if got.Max != 19 || got.OpenMax {
		t.Fatalf("got max=%v openMax=%v, want 19/false", got.Max, got.OpenMax)
	}
}

func TestAlwaysEqNeverEq(t *testing.T) {
	a := Fixed(48000)
	b := Fixed(48000)
	if !a.AlwaysEq(b) {
		t.Fatal("expected AlwaysEq for two equal fixed intervals")
	}
	c := Interval{Min: 8000, Max: 11025, Integer: true}
	if !a.NeverEq(c) {
		t.Fatal("expected NeverEq for disjoint ranges")
	}
}
