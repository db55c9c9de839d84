package media

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestDiscoverClassifiesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"part2.mp4", "part1.mp4",
		"zz-cover.png", "aa-cover.jpg",
		"part1.en.srt", "part1.zh-CN.srt",
		"notes.txt", "thumb.bmp",
	)

	found, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(found.Videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(found.Videos))
	}
	if filepath.Base(found.Videos[0].Path) != "part1.mp4" {
		t.Errorf("videos not sorted: first is %s", found.Videos[0].Path)
	}
	if found.Videos[0].Role != RolePrimaryVideo {
		t.Errorf("unexpected role %q", found.Videos[0].Role)
	}

	if found.Cover == nil {
		t.Fatal("expected a cover")
	}
	if filepath.Base(found.Cover.Path) != "aa-cover.jpg" {
		t.Errorf("cover should be first image by name, got %s", found.Cover.Path)
	}

	if len(found.Captions) != 2 {
		t.Fatalf("expected 2 captions, got %d", len(found.Captions))
	}
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	found, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(found.Videos) != 0 || found.Cover != nil || len(found.Captions) != 0 {
		t.Errorf("expected empty discovery, got %+v", found)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
