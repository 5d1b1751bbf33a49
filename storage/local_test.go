package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoragePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocal(dir, "/public/uploads/")

	url, err := ls.Put(context.Background(), "cover.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if url != "/public/uploads/cover.jpg" {
		t.Errorf("URL = %q, want /public/uploads/cover.jpg", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cover.jpg"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("file content = %q", data)
	}

	if err := ls.Delete(context.Background(), "cover.jpg"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cover.jpg")); !os.IsNotExist(err) {
		t.Errorf("file should be gone, stat err = %v", err)
	}
}

func TestLocalStorageDeleteMissing(t *testing.T) {
	ls := NewLocal(t.TempDir(), "/public/uploads")
	if err := ls.Delete(context.Background(), "nope.jpg"); err != nil {
		t.Errorf("deleting a missing object should not error, got %v", err)
	}
}
