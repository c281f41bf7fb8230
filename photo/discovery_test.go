package photo

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListEntries(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.txt", "a.jpg", ".hidden", "c.png"} {
		writeBytes(t, filepath.Join(dir, name), []byte("x"))
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("creating subdir: %v", err)
	}

	names, err := ListEntries(dir)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}

	expected := []string{"a.jpg", "b.txt", "c.png"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("ListEntries() = %v, expected %v", names, expected)
	}
}

func TestListEntries_EmptyDirectory(t *testing.T) {
	names, err := ListEntries(t.TempDir())
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no entries in empty directory, got %v", names)
	}
}

func TestListEntries_NonExistentDirectory(t *testing.T) {
	if _, err := ListEntries("/path/to/nonexistent/directory"); err == nil {
		t.Error("ListEntries() expected error for non-existent directory, got nil")
	}
}
