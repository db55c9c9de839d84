package captions

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// timecodePattern matches the fixed SRT cue range grammar
// `HH:MM:SS,mmm --> HH:MM:SS,mmm`.
var timecodePattern = regexp.MustCompile(
	`^(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// ParseSRT reads an SRT file and returns its cues. Blocks that are empty or
// whose time range fails the grammar are silently dropped.
func ParseSRT(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read caption file: %w", err)
	}
	return ParseSRTContent(string(data)), nil
}

// ParseSRTContent parses SRT text. Parsing is deterministic: the same input
// always yields the same cue sequence.
func ParseSRTContent(content string) []Cue {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(normalized), "\n\n")

	cues := make([]Cue, 0, len(blocks))
	for _, block := range blocks {
		if cue, ok := parseBlock(block); ok {
			cues = append(cues, cue)
		}
	}
	return cues
}

// parseBlock converts one blank-line-delimited block: an index line, the
// time range on the second line, then the cue text.
func parseBlock(block string) (Cue, bool) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 2 {
		return Cue{}, false
	}

	match := timecodePattern.FindStringSubmatch(strings.TrimSpace(lines[1]))
	if match == nil {
		return Cue{}, false
	}

	start := timecodeSeconds(match[1], match[2], match[3], match[4])
	end := timecodeSeconds(match[5], match[6], match[7], match[8])
	if start >= end {
		return Cue{}, false
	}

	text := strings.TrimSpace(strings.Join(lines[2:], "\n"))
	return Cue{
		Start:    start,
		End:      end,
		Text:     text,
		Position: DefaultPosition,
	}, true
}

func timecodeSeconds(hh, mm, ss, ms string) float64 {
	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	seconds, _ := strconv.Atoi(ss)
	millis, _ := strconv.Atoi(ms)
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000
}

// FormatTimecode renders seconds back into the SRT `HH:MM:SS,mmm` grammar.
func FormatTimecode(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	hours := totalMillis / 3_600_000
	totalMillis %= 3_600_000
	minutes := totalMillis / 60_000
	totalMillis %= 60_000
	secs := totalMillis / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
