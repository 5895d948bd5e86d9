package common

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"blue", color.RGBA{0, 0, 255, 255}},
		{"  Orange ", color.RGBA{255, 165, 0, 255}},
		{"#f60", color.RGBA{255, 102, 0, 255}},
		{"#367EEC", color.RGBA{54, 126, 236, 255}},
		{"#f6ff00ff", color.RGBA{246, 255, 0, 255}},
		{"rgb(255, 0, 162)", color.RGBA{255, 0, 162, 255}},
		{"rgba(54, 126, 236, 1)", color.RGBA{54, 126, 236, 255}},
		{"rgba(255, 255, 255, 0)", color.RGBA{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-color", "#12", "#zzzzzz", "rgb(1,2)", "rgba(1,2,3,4)", "rgb(300,0,0)", "rgb(1,2,3"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustParseColor to panic on invalid input")
		}
	}()
	MustParseColor("nope")
}

func TestColorToFloats(t *testing.T) {
	got := ColorToFloats(color.RGBA{255, 0, 51, 255})
	want := [3]float32{1, 0, 0.2}
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("ColorToFloats = %v, want %v", got, want)
		}
	}
	if ColorToFloats(nil) != [3]float32{} {
		t.Error("ColorToFloats(nil) should be black")
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		got := WrapAngle(float32(tt.in))
		if math.Abs(float64(got)-tt.want) > 1e-5 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 3, 4); got != 3 {
		t.Errorf("Coalesce = %d, want 3", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("Coalesce = %q, want empty", got)
	}
}
