package language

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// CanonicalChinese is the tag every recognized Chinese variant collapses to.
// The platform caption API accepts a single simplified-Chinese track.
const CanonicalChinese = "zh-CN"

var chineseVariants = map[string]struct{}{
	"zh":      {},
	"zh-cn":   {},
	"zh-tw":   {},
	"zh-hk":   {},
	"zh-sg":   {},
	"zh-mo":   {},
	"zh-hans": {},
}

// Normalize maps a raw language tag to the form submitted to the platform.
// Chinese variants collapse to CanonicalChinese; any other recognizable tag
// is canonicalized through BCP 47 parsing; unrecognized input passes
// through trimmed.
func Normalize(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return ""
	}
	if _, ok := chineseVariants[strings.ToLower(trimmed)]; ok {
		return CanonicalChinese
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	return parsed.String()
}

// FromFilename derives the language tag from the `name.<lang>.ext` filename
// convention. A filename without a middle tag yields fallback.
func FromFilename(name, fallback string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if ext := filepath.Ext(base); ext != "" && len(ext) > 1 {
		return Normalize(ext[1:])
	}
	return Normalize(fallback)
}
