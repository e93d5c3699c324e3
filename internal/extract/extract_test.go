package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"manual.pdf", true},
		{"MANUAL.PDF", true},
		{"notes.txt", true},
		{"readme.md", true},
		{"image.png", false},
		{"archive.tar.gz", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFile_PlainText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	const content = "The capital of France is Paris."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if text.Content != content {
		t.Errorf("content: got %q, want %q", text.Content, content)
	}
	if text.Pages != 1 {
		t.Errorf("pages: got %d, want 1", text.Pages)
	}
}

func TestFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := File("data.csv"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestFile_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := File(filepath.Join(t.TempDir(), "gone.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
