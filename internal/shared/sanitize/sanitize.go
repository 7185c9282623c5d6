package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips every HTML tag from free text (names, notes, audit details) and trims it.
// Entities escaped by the policy are turned back into plain characters unless that would
// reintroduce markup, in which case the escaped form is kept.
func Text(s string) string {
	clean := strings.TrimSpace(strict.Sanitize(s))
	if plain := html.UnescapeString(clean); !strings.ContainsAny(plain, "<>") {
		return plain
	}
	return clean
}

// OptionalText sanitizes a nullable field. An input that is empty after sanitizing becomes nil.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	clean := Text(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
