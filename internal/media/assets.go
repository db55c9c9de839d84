package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Role classifies a discovered asset.
type Role string

const (
	RolePrimaryVideo Role = "primary-video"
	RoleCover        Role = "cover-image"
)

// Asset is a staged file the pipeline publishes. Immutable after discovery.
type Asset struct {
	Path string
	Role Role
}

// CaptionExtension is the fixed extension identifying timed-text files.
const CaptionExtension = ".srt"

var videoExtensions = map[string]struct{}{
	".mp4": {},
	".flv": {},
	".avi": {},
	".mkv": {},
	".mov": {},
}

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// Discovery holds everything found in one staging directory.
type Discovery struct {
	Videos   []Asset
	Cover    *Asset
	Captions []string
}

// Discover scans a staging directory and classifies its files. Unknown
// extensions are ignored. Videos and captions are returned sorted by name;
// the cover is the first image in name order.
func Discover(dir string) (Discovery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Discovery{}, fmt.Errorf("read staging directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var found Discovery
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		path := filepath.Join(dir, name)
		switch {
		case isVideo(ext):
			found.Videos = append(found.Videos, Asset{Path: path, Role: RolePrimaryVideo})
		case isImage(ext):
			if found.Cover == nil {
				cover := Asset{Path: path, Role: RoleCover}
				found.Cover = &cover
			}
		case ext == CaptionExtension:
			found.Captions = append(found.Captions, path)
		}
	}
	return found, nil
}

func isVideo(ext string) bool {
	_, ok := videoExtensions[ext]
	return ok
}

func isImage(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}
