package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "logo.dst", false},
		{"valid nested", "designs/2024/logo.dst", false},
		{"valid with spaces", "my designs/logo.dst", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		wantErr bool
	}{
		{"distinct file", "logo.svg", "logo.dst", false},
		{"no input", "logo.svg", "", false},
		{"directory", "out/", "logo.dst", true},
		{"overwrites input", "./logo.dst", "logo.dst", true},
		{"empty", "", "logo.dst", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.output, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q, %q) error = %v, wantErr %v", tt.output, tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIterations(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MaxIterations, false},
		{-1, true},
		{MaxIterations + 1, true},
	}

	for _, tt := range tests {
		err := ValidateIterations(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIterations(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}
