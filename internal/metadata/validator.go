package metadata

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"stagecast/internal/services"
)

// ValidationError carries every violation found in a publication request.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("publication metadata invalid: %s", strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error { return services.ErrValidation }

// Validate checks the request against platform constraints and returns the
// ordered list of human-readable violations. Every rule is evaluated; the
// result is empty when the request is publishable.
func Validate(req Request) []string {
	var violations []string
	violations = append(violations, validateTitle(req.Title)...)
	violations = append(violations, validateZone(req.ZoneID)...)
	violations = append(violations, validateTags(req.Tags)...)
	violations = append(violations, validateDescription(req.Description)...)
	violations = append(violations, validateCover(req.CoverRef)...)
	return violations
}

// ValidateStrict wraps the violations in a ValidationError, or returns nil
// when the request passes.
func ValidateStrict(req Request) error {
	violations := Validate(req)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func validateTitle(title string) []string {
	if strings.TrimSpace(title) == "" {
		return []string{"title must not be empty"}
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return []string{fmt.Sprintf("title too long (%d > %d characters)", n, MaxTitleLength)}
	}
	return nil
}

func validateZone(zoneID int) []string {
	if zoneID <= 0 {
		return []string{"zone id must be a positive integer"}
	}
	return nil
}

func validateTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{"at least one tag is required"}
	}
	var violations []string
	if len(tags) > MaxTagCount {
		violations = append(violations, fmt.Sprintf("too many tags (%d > %d)", len(tags), MaxTagCount))
	}
	for _, tag := range tags {
		if n := utf8.RuneCountInString(tag); n > MaxTagLength {
			violations = append(violations, fmt.Sprintf("tag %q too long (%d > %d characters)", truncateTag(tag), n, MaxTagLength))
		}
	}
	return violations
}

func validateDescription(desc string) []string {
	if n := utf8.RuneCountInString(desc); n > MaxDescriptionLength {
		return []string{fmt.Sprintf("description too long (%d > %d characters)", n, MaxDescriptionLength)}
	}
	return nil
}

func validateCover(coverRef string) []string {
	if strings.TrimSpace(coverRef) == "" {
		return nil
	}
	info, err := os.Stat(coverRef)
	if err != nil {
		return []string{fmt.Sprintf("cover file does not exist: %s", coverRef)}
	}
	if info.IsDir() {
		return []string{fmt.Sprintf("cover path is a directory: %s", coverRef)}
	}
	return nil
}

func truncateTag(tag string) string {
	runes := []rune(tag)
	if len(runes) <= 10 {
		return tag
	}
	return string(runes[:10]) + "..."
}
