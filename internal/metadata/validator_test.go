package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stagecast/internal/services"
)

func validRequest() Request {
	return Request{
		ZoneID: 17,
		Title:  "A test publication",
		Tags:   []string{"test", "automation"},
	}
}

func TestValidatePassesValidRequest(t *testing.T) {
	if violations := Validate(validRequest()); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		violate bool
	}{
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"exactly 80 runes", strings.Repeat("t", 80), false},
		{"81 runes", strings.Repeat("t", 81), true},
		{"80 multibyte runes", strings.Repeat("测", 80), false},
		{"81 multibyte runes", strings.Repeat("测", 81), true},
		{"ordinary", "My video", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Title = tt.title
			violations := Validate(req)
			found := false
			for _, v := range violations {
				if strings.Contains(v, "title") {
					found = true
				}
			}
			if found != tt.violate {
				t.Errorf("title %q: violation=%v, want %v (all: %v)", tt.title, found, tt.violate, violations)
			}
		})
	}
}

func TestValidateZoneID(t *testing.T) {
	for _, zone := range []int{0, -5} {
		req := validRequest()
		req.ZoneID = zone
		if violations := Validate(req); len(violations) == 0 {
			t.Errorf("zone %d: expected a violation", zone)
		}
	}
}

func TestValidateTags(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		violate bool
	}{
		{"missing", nil, true},
		{"empty list", []string{}, true},
		{"one tag", []string{"ok"}, false},
		{"ten tags", repeatTags(10), false},
		{"eleven tags", repeatTags(11), true},
		{"tag at limit", []string{strings.Repeat("x", 20)}, false},
		{"tag over limit", []string{strings.Repeat("x", 21)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.Tags = tt.tags
			violations := Validate(req)
			if (len(violations) > 0) != tt.violate {
				t.Errorf("tags %v: violations=%v, want violation=%v", tt.tags, violations, tt.violate)
			}
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	req := Request{
		ZoneID:      0,
		Title:       "",
		Tags:        nil,
		Description: strings.Repeat("d", 2001),
		CoverRef:    "/does/not/exist.jpg",
	}
	violations := Validate(req)
	if len(violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(violations), violations)
	}
}

func TestValidateCoverRef(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(cover, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	req := validRequest()
	req.CoverRef = cover
	if violations := Validate(req); len(violations) != 0 {
		t.Errorf("existing cover: unexpected violations %v", violations)
	}

	req.CoverRef = dir
	if violations := Validate(req); len(violations) == 0 {
		t.Error("directory cover: expected a violation")
	}
}

func TestValidateStrictClassification(t *testing.T) {
	req := validRequest()
	if err := ValidateStrict(req); err != nil {
		t.Fatalf("valid request: %v", err)
	}

	req.Title = ""
	err := ValidateStrict(req)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("error should classify as validation: %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Violations) == 0 {
		t.Errorf("expected ValidationError with violations, got %v", err)
	}
}

func repeatTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = "tag"
	}
	return tags
}
