package errors

import (
	"testing"
)

func TestValidatePartName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid part", "3001.dat", false},
		{"valid with subfolder", "s/3001s01.dat", false},
		{"valid sub-model", "chassis.ldr", false},
		{"valid with spaces", "my wheel.dat", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal", "../parts/3001.dat", true},
		{"absolute path", "/etc/passwd", true},
		{"null byte", "foo\x00bar.dat", true},
		{"control char", "foo\x01bar.dat", true},
		{"newline", "foo\nbar.dat", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePartName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePartName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateModelPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "models/castle.mpd", false},
		{"valid absolute", "/home/user/models/castle.ldr", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x1bbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModelPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModelPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
