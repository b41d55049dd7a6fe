package part

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.0")

	if err := Create(path, []byte("hello"), false); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
}

func TestCreate_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.0")

	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 100), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := Create(path, []byte("abc"), true); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("content = %q, want %q", got, "abc")
	}
}

func TestCreate_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "data.0")

	if err := Create(path, []byte("x"), false); err == nil {
		t.Error("Create() should fail when the directory does not exist")
	}
}
