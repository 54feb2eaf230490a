package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(file, []byte("0 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"valid file", file, ""},
		{"empty", "", ErrCodeInvalidPath},
		{"null byte", "foo\x00bar", ErrCodeInvalidPath},
		{"control char", "foo\x01bar", ErrCodeInvalidPath},
		{"too long", string(make([]byte, 5000)), ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "nope.txt"), ErrCodeFileNotFound},
		{"directory", dir, ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.input)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateInputPath(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateInputPath(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	allowed := []string{"bitset", "hash", "ordered"}

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"bitset", false},
		{"HASH", false},
		{" ordered ", false},
		{"btree", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateChoice(ErrCodeInvalidBackend, "backend", tt.input, allowed)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateChoice(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidBackend) {
			t.Errorf("ValidateChoice(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidBackend)
		}
	}
}
