package ldraw

import (
	"testing"

	"github.com/brickforge/brickstep/pkg/geom"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-1, "-1"},
		{1.5, "1.5"},
		{1.25, "1.25"},
		{0.0001, "0.0001"},
		{0.00001, "0"},
		{-0.00001, "0"},
		{1.23456, "1.2346"},
		{-0.0, "0"},
		{10.10, "10.1"},
		{-30.25, "-30.25"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatVector(t *testing.T) {
	got := FormatVector(geom.V(1, -0.00001, 2.5))
	if got != "1 0 2.5" {
		t.Errorf("FormatVector = %q", got)
	}
}

func TestQuantize(t *testing.T) {
	if got := Quantize(1.23456789); got != 1.2346 {
		t.Errorf("Quantize = %v", got)
	}
	if got := Quantize(-0.00004); got != -0.0 {
		t.Errorf("Quantize = %v", got)
	}
}

func TestFormatMatrix(t *testing.T) {
	got := FormatMatrix(geom.Identity())
	if got != "1 0 0 0 1 0 0 0 1" {
		t.Errorf("FormatMatrix(identity) = %q", got)
	}
}
