package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Normal Name", "Normal Name"},
		{"Slash/Name", "SlashName"},
		{"Colon:Name", "ColonName"},
		{"Trailing Dot.", "Trailing Dot"},
		{"<Invalid>", "Invalid"},
		{"../escape", "escape"},
	}

	for _, tt := range tests {
		got := Sanitize(tt.input)
		if got != tt.expected {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEnsureDirAndWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}

	path := filepath.Join(dir, "file.mp3")
	if err := WriteFile(path, []byte("audio")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !FileExists(path) {
		t.Error("Expected FileExists true for written file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("Unexpected contents: %q", data)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if FileExists(filepath.Join(dir, "missing.mp3")) {
		t.Error("Expected false for missing file")
	}
	if FileExists(dir) {
		t.Error("Expected false for a directory")
	}
}
