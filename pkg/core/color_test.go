package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColorOperations(t *testing.T) {
	c1 := NewColor(0.9, 0.6, 0.75)
	c2 := NewColor(0.7, 0.1, 0.25)

	tests := []struct {
		name     string
		got      Color
		expected Color
	}{
		{"add", c1.Add(c2), NewColor(1.6, 0.7, 1.0)},
		{"subtract", c1.Subtract(c2), NewColor(0.2, 0.5, 0.5)},
		{"scalar", NewColor(0.2, 0.3, 0.4).Multiply(2), NewColor(0.4, 0.6, 0.8)},
		{"hadamard", NewColor(1, 0.2, 0.4).MultiplyColor(NewColor(0.9, 1, 0.1)), NewColor(0.9, 0.2, 0.04)},
		{"clamp", NewColor(1.5, -0.5, 0.5).Clamp(0, 1), NewColor(1, 0, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.got, tt.expected, approx); diff != "" {
				t.Errorf("mismatch (-got +want)\n%s", diff)
			}
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Equals(%v, %v) = false", tt.got, tt.expected)
			}
		})
	}
}

func TestColorLuminance(t *testing.T) {
	if l := White.Luminance(); !FloatEqual(l, 1) {
		t.Errorf("white luminance = %f, want 1", l)
	}
	if l := Black.Luminance(); l != 0 {
		t.Errorf("black luminance = %f, want 0", l)
	}
}
