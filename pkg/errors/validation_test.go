package errors

import (
	"strings"
	"testing"
)

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid png", "helloworld.png", false},
		{"valid svg", "code-snippet.svg", false},
		{"valid spaces", "my snippet (1).png", false},
		{"valid unicode", "größe.png", false},
		{"valid dotfile", ".snippet.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300) + ".png", true},
		{"slash", "out/file.png", true},
		{"backslash", "out\\file.png", true},
		{"parent", "..", true},
		{"dot", ".", true},
		{"traversal", "..png", true},
		{"null byte", "foo\x00.png", true},
		{"newline", "foo\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFileName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out", false},
		{"absolute", "/tmp/exports", false},
		{"dot", ".", false},

		{"empty", "", true},
		{"null byte", "/tmp\x00", true},
		{"control char", "out\x07", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDir(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDir(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
