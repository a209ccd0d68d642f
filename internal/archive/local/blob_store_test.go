package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutObjectWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := New(Config{BaseDir: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	uri, err := store.PutObject(context.Background(), "pages/http-abc.html", "text/html", []byte("<html/>"))
	if err != nil {
		t.Fatalf("PutObject() error = %v", err)
	}
	if !strings.HasPrefix(uri, "file://") {
		t.Fatalf("expected file:// uri, got %q", uri)
	}

	data, err := os.ReadFile(filepath.Join(dir, "pages", "http-abc.html"))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(data) != "<html/>" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestPutObjectRejectsEscapingPath(t *testing.T) {
	t.Parallel()

	store, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := store.PutObject(context.Background(), "../outside.html", "text/html", []byte("x")); err == nil {
		t.Fatal("expected error for path escaping base directory")
	}
}

func TestPutObjectRequiresPath(t *testing.T) {
	t.Parallel()

	store, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := store.PutObject(context.Background(), "  ", "text/html", []byte("x")); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestNewCreatesMissingBaseDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "snapshots")
	if _, err := New(Config{BaseDir: dir}); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected base dir to be created, err=%v", err)
	}
}

func TestNewRequiresBaseDir(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty base dir")
	}
}
