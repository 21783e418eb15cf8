package core

import (
	"math"
	"testing"
)

func TestInterval_Sentinels(t *testing.T) {
	if !EmptyInterval.IsEmpty() {
		t.Error("EmptyInterval should be empty")
	}
	if EmptyInterval.Contains(0) {
		t.Error("EmptyInterval should contain nothing")
	}
	if !UniverseInterval.Contains(1e300) || !UniverseInterval.Contains(-1e300) {
		t.Error("UniverseInterval should contain everything")
	}

	i := NewInterval(2, 5)
	if got := EmptyInterval.Union(i); got != i {
		t.Errorf("Empty should be the identity for Union, got %v", got)
	}
}

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	i := NewInterval(0, 1)
	tests := []struct {
		x         float64
		contains  bool
		surrounds bool
	}{
		{-0.1, false, false},
		{0, true, false},
		{0.5, true, true},
		{1, true, false},
		{1.1, false, false},
	}

	for _, tt := range tests {
		if got := i.Contains(tt.x); got != tt.contains {
			t.Errorf("Contains(%f): expected %t, got %t", tt.x, tt.contains, got)
		}
		if got := i.Surrounds(tt.x); got != tt.surrounds {
			t.Errorf("Surrounds(%f): expected %t, got %t", tt.x, tt.surrounds, got)
		}
	}
}

func TestInterval_ClampExpand(t *testing.T) {
	i := NewInterval(0, 1)
	if i.Clamp(-3) != 0 || i.Clamp(3) != 1 || i.Clamp(0.25) != 0.25 {
		t.Error("Clamp did not limit values to [0,1]")
	}

	e := i.Expand(0.5)
	if math.Abs(e.Min+0.25) > 1e-12 || math.Abs(e.Max-1.25) > 1e-12 {
		t.Errorf("Expected [-0.25,1.25], got %v", e)
	}
}
