package ldraw

import "testing"

func TestColourFromCode(t *testing.T) {
	white := ColourFromCode(15)
	if white.R != 1 || white.G != 1 || white.B != 1 {
		t.Errorf("white rgb = %v %v %v", white.R, white.G, white.B)
	}
	if white.Name() != "White" {
		t.Errorf("name = %q", white.Name())
	}
	if white.HexCode() != "#FFFFFF" {
		t.Errorf("hex = %q", white.HexCode())
	}
	if white.String() != "15" {
		t.Errorf("string = %q", white.String())
	}
	if r, g, b := white.HighContrastComplement(); r != 0 || g != 0 || b != 0 {
		t.Error("complement of white should be black")
	}
	if r, g, b := ColourFromCode(0).HighContrastComplement(); r != 1 || g != 1 || b != 1 {
		t.Error("complement of black should be white")
	}
}

func TestColourFromCodeUnknown(t *testing.T) {
	c := ColourFromCode(9999)
	if c.Code != 9999 {
		t.Errorf("code = %d", c.Code)
	}
	// Unknown codes resolve to the undefined grey.
	if c.HexCode() != "#808080" {
		t.Errorf("hex = %q", c.HexCode())
	}
}

func TestColourEquality(t *testing.T) {
	byCode := ColourFromCode(15)
	byHex := ColourFromHex("#FFFFFF")
	byName, ok := ColourFromName("White")
	if !ok {
		t.Fatal("White not found")
	}
	if !byCode.Equal(byHex) || !byCode.Equal(byName) {
		t.Error("white variants should compare equal")
	}
	if byCode.Equal(ColourFromCode(0)) {
		t.Error("white should not equal black")
	}
	// Equality holds on identical RGB even with differing codes.
	a := Colour{Code: -1, R: 0.5, G: 0.5, B: 0.5}
	b := Colour{Code: 100, R: 0.5, G: 0.5, B: 0.5}
	if !a.Equal(b) {
		t.Error("identical RGB should compare equal")
	}
}

func TestColourFromHexUnknown(t *testing.T) {
	c := ColourFromHex("#901F76")
	if c.Code != -1 {
		t.Errorf("code = %d, want -1", c.Code)
	}
}
