package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "Groceries.txt")

	if err := Write(path, "Groceries", "milk, eggs"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if want := "# Groceries\n\nmilk, eggs"; string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, "T", ""); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "# T\n\n" {
		t.Errorf("got %q", data)
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a directory is expected.
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(filepath.Join(blocker, "x.txt"), "T", "c"); err == nil {
		t.Error("expected error writing below a regular file")
	}
}

func TestFormat_Unicode(t *testing.T) {
	got := Format("Café ☕", "naïve\nline two")
	if want := "# Café ☕\n\nnaïve\nline two"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefaultFileName(t *testing.T) {
	tests := []struct {
		title, want string
	}{
		{"Groceries", "Groceries.txt"},
		{"a/b", "a_b.txt"},
		{`c:\temp`, "c:_temp.txt"},
		{"   ", "note.txt"},
	}
	for _, tt := range tests {
		if got := DefaultFileName(tt.title); got != tt.want {
			t.Errorf("DefaultFileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
