package storage

import (
	"os"
	"strings"
	"testing"

	"dealsHub/internal/apperror"
)

func TestAllowed(t *testing.T) {
	cases := map[string]bool{
		"photo.png":     true,
		"photo.JPG":     true,
		"photo.jpeg":    true,
		"photo.gif":     true,
		"photo.webp":    true,
		"archive.zip":   false,
		"script.php":    false,
		"noextension":   false,
		"double.tar.gz": false,
	}

	for name, want := range cases {
		if got := Allowed(name); got != want {
			t.Errorf("Allowed(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestUniqueFilenameSanitizes(t *testing.T) {
	name := uniqueFilename("my photo (1).png")

	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected .png suffix, got %s", name)
	}
	if strings.ContainsAny(name, " ()") {
		t.Errorf("expected sanitized name, got %s", name)
	}
	if !strings.HasPrefix(name, "my_photo_") {
		t.Errorf("expected base preserved, got %s", name)
	}
}

func TestUniqueFilenameEmptyBase(t *testing.T) {
	name := uniqueFilename("....png")

	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected .png suffix, got %s", name)
	}
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		t.Errorf("expected generated base, got %s", name)
	}
}

func TestNewImageStoreCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/uploads"

	store, err := NewImageStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, store.Dir())
	}
}

func TestImageStoreIsStorageErrorOnBadDir(t *testing.T) {
	// A file in place of the directory forces MkdirAll to fail.
	dir := t.TempDir()
	bad := dir + "/occupied"
	if err := os.WriteFile(bad, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, err := NewImageStore(bad + "/uploads")
	if err == nil {
		t.Fatal("expected error for unusable directory")
	}
	if !apperror.Is(err, apperror.KindStorage) {
		t.Errorf("expected storage error, got %v", err)
	}
}
